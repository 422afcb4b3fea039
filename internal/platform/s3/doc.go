// Package s3 publishes synthesized stack templates to an S3 bucket.
//
// The bucket is created on first use. Uploads are skipped when the stored
// object already matches, so publishing the same template twice is a no-op.
package s3
