package mediaservice

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type Config struct {
	Region     string
	Bucket     string
	AccessKey  string
	SecretKey  string
	Endpoint   string
	PublicBase string
	Timeout    time.Duration
}

// MediaService uploads local files to an S3-compatible object store and
// hands back a durable public URL.
type MediaService struct {
	cfg    Config
	client *s3.Client
}
