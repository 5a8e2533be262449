package files

import (
	"context"
	"strconv"

	"github.com/joy-dx/edunet/dto"
)

// ObjectLister lists the files stored under one directory of a bucket
type ObjectLister interface {
	ListFiles(ctx context.Context, pathName string) ([]dto.RemoteFile, error)
}

// S3Lister maps a subject to the bucket directory named by its id
type S3Lister struct {
	objects ObjectLister
}

func NewS3Lister(objects ObjectLister) *S3Lister {
	return &S3Lister{objects: objects}
}

func (l *S3Lister) ListFiles(ctx context.Context, subjectID int) ([]dto.RemoteFile, error) {
	return l.objects.ListFiles(ctx, strconv.Itoa(subjectID))
}
