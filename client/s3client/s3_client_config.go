package s3client

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/joy-dx/edunet/dto"
)

const NetClientS3Ref dto.NetClientType = "net.client.s3"

// S3ClientConfig defines where lecture files live in an S3 compatible bucket.
// Objects are keyed Prefix/PathName/FileName.
type S3ClientConfig struct {
	Region         string
	Bucket         string
	Prefix         string
	Credentials    aws.CredentialsProvider
	ForcePathStyle bool
	Endpoint       string // optional custom endpoint
}

func DefaultS3ClientConfig(region, bucket string) S3ClientConfig {
	return S3ClientConfig{Region: region, Bucket: bucket}
}

func (c *S3ClientConfig) WithPrefix(prefix string) *S3ClientConfig {
	c.Prefix = prefix
	return c
}

func (c *S3ClientConfig) WithEndpoint(endpoint string, forcePathStyle bool) *S3ClientConfig {
	c.Endpoint = endpoint
	c.ForcePathStyle = forcePathStyle
	return c
}

func (c *S3ClientConfig) WithCredentials(provider aws.CredentialsProvider) *S3ClientConfig {
	c.Credentials = provider
	return c
}
