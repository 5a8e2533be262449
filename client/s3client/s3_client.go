package s3client

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joy-dx/edunet/dto"
)

// s3API This internal interface abstracts the s3 client for easier testing
type s3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3Client serves lecture files from a bucket. It satisfies dto.FileSource.
type S3Client struct {
	NetClient dto.NetClient
	cfg       *S3ClientConfig
	client    s3API
}

var _ dto.FileSource = (*S3Client)(nil)

func NewS3Client(ctx context.Context, ref string, cfg *S3ClientConfig) (*S3Client, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 bucket not set")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.Credentials != nil {
		opts = append(opts, config.WithCredentialsProvider(cfg.Credentials))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.ForcePathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return newS3Client(ref, cfg, client), nil
}

func newS3Client(ref string, cfg *S3ClientConfig, api s3API) *S3Client {
	return &S3Client{
		cfg:    cfg,
		client: api,
		NetClient: dto.NetClient{
			Name:        "S3 Client",
			Ref:         ref,
			ClientType:  NetClientS3Ref,
			Description: "Streams and lists lecture files stored in S3",
		},
	}
}

func (c *S3Client) Ref() string {
	return c.NetClient.Ref
}

func (c *S3Client) Type() dto.NetClientType {
	return NetClientS3Ref
}

func (c *S3Client) objectKey(file dto.RemoteFile) (string, error) {
	if file.FileName == "" {
		return "", dto.ErrInvalidFileName
	}
	return strings.TrimPrefix(path.Join(c.cfg.Prefix, file.PathName, file.FileName), "/"), nil
}

func (c *S3Client) SourceURL(file dto.RemoteFile) (string, error) {
	key, err := c.objectKey(file)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("s3://%s/%s", c.cfg.Bucket, key), nil
}

// Open starts streaming the object. The caller closes the body.
func (c *S3Client) Open(ctx context.Context, file dto.RemoteFile) (dto.TransferStream, error) {
	key, err := c.objectKey(file)
	if err != nil {
		return dto.TransferStream{}, err
	}

	out, err := c.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return dto.TransferStream{}, fmt.Errorf("s3 get object: %w", err)
	}

	total := int64(-1)
	if out.ContentLength != nil {
		total = aws.ToInt64(out.ContentLength)
	}
	return dto.TransferStream{Body: out.Body, TotalSize: total}, nil
}

// ListFiles lists the objects stored under pathName, one RemoteFile per key.
func (c *S3Client) ListFiles(ctx context.Context, pathName string) ([]dto.RemoteFile, error) {
	prefix := strings.TrimPrefix(path.Join(c.cfg.Prefix, pathName), "/")
	if prefix != "" {
		prefix += "/"
	}

	paginator := s3.NewListObjectsV2Paginator(c.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(c.cfg.Bucket),
		Prefix: aws.String(prefix),
	})

	var files []dto.RemoteFile
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("s3 list objects: %w", err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			name := strings.TrimPrefix(key, prefix)
			if name == "" || strings.Contains(name, "/") {
				continue
			}
			files = append(files, dto.RemoteFile{
				Name:     name,
				PathName: pathName,
				FileName: name,
			})
		}
	}
	return files, nil
}
