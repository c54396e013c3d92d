package config

import "time"

const (
	envUploadEndpoint = "ASKDATA_UPLOAD_ENDPOINT"
	envUploadBucket   = "ASKDATA_UPLOAD_BUCKET"
	envUploadRegion   = "ASKDATA_UPLOAD_REGION"
	envUploadAttempts = "ASKDATA_UPLOAD_ATTEMPTS"
	envUploadDelay    = "ASKDATA_UPLOAD_DELAY"
	envUploadBatch    = "ASKDATA_UPLOAD_BATCH"
	envUploadInclude  = "ASKDATA_UPLOAD_INCLUDE"
	envUploadExclude  = "ASKDATA_UPLOAD_EXCLUDE"

	defaultUploadAttempts = 3
	defaultUploadDelay    = 2 * Duration(time.Second)
	defaultUploadBatch    = 4
)

// UploadConfig controls publishing to the object store. Uploads are off
// unless an endpoint and bucket are configured.
type UploadConfig struct {
	Endpoint string
	Bucket   string
	Region   string

	Attempts  int
	Delay     Duration
	BatchSize int

	IncludePatterns []string
	ExcludePatterns []string
}

// Enabled reports whether enough is configured to upload at all.
func (c UploadConfig) Enabled() bool {
	return c.Endpoint != "" && c.Bucket != ""
}

func loadUpload() UploadConfig {
	return UploadConfig{
		Endpoint:        envOrDefault(envUploadEndpoint, ""),
		Bucket:          envOrDefault(envUploadBucket, ""),
		Region:          envOrDefault(envUploadRegion, ""),
		Attempts:        intEnvOrDefault(envUploadAttempts, defaultUploadAttempts),
		Delay:           durationEnvOrDefault(envUploadDelay, defaultUploadDelay),
		BatchSize:       intEnvOrDefault(envUploadBatch, defaultUploadBatch),
		IncludePatterns: listEnvOrDefault(envUploadInclude, nil),
		ExcludePatterns: listEnvOrDefault(envUploadExclude, nil),
	}
}
