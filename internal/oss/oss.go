package oss

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/Peezy0/Accel1/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// OSS 对象存储客户端，presignCli 使用对外地址生成下载链接
type OSS struct {
	cli        *minio.Client
	presignCli *minio.Client
}

func newMinioClient(address, accessKey, secretKey string) (*minio.Client, error) {
	endpoint := address
	secure := false

	if strings.HasPrefix(address, "http://") || strings.HasPrefix(address, "https://") {
		u, err := url.Parse(address)
		if err != nil {
			return nil, err
		}
		if u.Path != "" && u.Path != "/" {
			return nil, errors.New("endpoint url cannot have fully qualified paths")
		}
		endpoint = u.Host
		secure = u.Scheme == "https"
	}

	return minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: secure,
		Region: "us-east-1",
	})
}

// NewOSSClient 根据配置创建客户端，publicAddress 为空时复用内部地址
func NewOSSClient(cfg config.OSSConfig) (*OSS, error) {
	cli, err := newMinioClient(cfg.Address, cfg.AccessKey, cfg.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("创建对象存储客户端失败: %w", err)
	}
	publicAddress := cfg.PublicAddress

	presignCli := cli
	if strings.TrimSpace(publicAddress) != "" {
		presignCli, err = newMinioClient(publicAddress, cfg.AccessKey, cfg.SecretKey)
		if err != nil {
			return nil, fmt.Errorf("创建对外地址客户端失败: %w", err)
		}
	}

	return &OSS{cli: cli, presignCli: presignCli}, nil
}

// CreateBucket 创建存储桶（如果不存在）
func (o *OSS) CreateBucket(ctx context.Context, bucket string) error {
	exists, err := o.cli.BucketExists(ctx, bucket)
	if err != nil {
		return err
	}
	if !exists {
		return o.cli.MakeBucket(ctx, bucket, minio.MakeBucketOptions{})
	}
	return nil
}

// UploadFile 服务器端直接上传文件流
func (o *OSS) UploadFile(ctx context.Context, bucket, key string, reader io.Reader, size int64, contentType string) error {
	_, err := o.cli.PutObject(ctx, bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

// PresignGet 生成预签名下载链接
func (o *OSS) PresignGet(ctx context.Context, bucket, key string, ttl time.Duration) (string, error) {
	reqParams := make(url.Values)
	u, err := o.presignCli.PresignedGetObject(ctx, bucket, key, ttl, reqParams)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}
