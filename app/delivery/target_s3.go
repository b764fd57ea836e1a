package delivery

import (
	"bytes"
	"context"
	"io/ioutil"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"cardioapp_backend/app/core"
)

var contentTypePDF = "application/pdf"

// S3Target uploads the document into a named folder of a cloud bucket under
// the service identity from the configuration.
type S3Target struct {
	s3     *s3.S3
	bucket string
	prefix string
}

func NewS3Target(cfg core.ConfigurationStorage) (*S3Target, error) {
	awsSession, err := session.NewSession(&aws.Config{
		Region:      aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
	})
	if err != nil {
		return nil, err
	}

	prefix := cfg.Folder
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &S3Target{
		s3:     s3.New(awsSession),
		bucket: cfg.Bucket,
		prefix: prefix,
	}, nil
}

func (t *S3Target) Name() string {
	return "cloud"
}

func (t *S3Target) Deliver(ctx context.Context, doc Document) error {
	data, err := ioutil.ReadFile(doc.Path)
	if err != nil {
		return &Fault{Kind: FaultInternal, Err: err}
	}

	key := t.prefix + doc.Filename
	_, err = t.s3.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(t.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   &contentTypePDF,
	})
	if err != nil {
		return &Fault{Kind: classifyAWSError(err), Err: err}
	}
	return nil
}

func classifyAWSError(err error) FaultKind {
	if aerr, ok := err.(awserr.Error); ok {
		switch aerr.Code() {
		case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch", "ExpiredToken":
			return FaultAuth
		case "SlowDown", "ServiceUnavailable", "RequestLimitExceeded":
			return FaultQuota
		case "RequestCanceled":
			return FaultTimeout
		}
	}
	return FaultNetwork
}
