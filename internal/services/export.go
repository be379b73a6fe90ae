package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ObjectStore 导出快照所需的对象存储能力，oss.OSS 实现了该接口
type ObjectStore interface {
	UploadFile(ctx context.Context, bucket, key string, reader io.Reader, size int64, contentType string) error
	PresignGet(ctx context.Context, bucket, key string, ttl time.Duration) (string, error)
}

// ExportReceipt 导出结果
type ExportReceipt struct {
	Bucket    string    `json:"bucket"`
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// pastWorkSnapshot 上传的 JSON 内容
type pastWorkSnapshot struct {
	ExportedAt time.Time       `json:"exported_at"`
	PastWork   *PastWork       `json:"past_work"`
	Entries    []PastWorkEntry `json:"entries"`
}

// ExportService 把历史记录快照上传到对象存储
type ExportService struct {
	Plan   *PlanService
	Store  ObjectStore
	Bucket string
	Prefix string
	TTL    time.Duration

	now func() time.Time
}

// NewExportService 创建导出服务
func NewExportService(plan *PlanService, store ObjectStore, bucket, prefix string, ttl time.Duration) *ExportService {
	return &ExportService{
		Plan:   plan,
		Store:  store,
		Bucket: bucket,
		Prefix: prefix,
		TTL:    ttl,
		now:    time.Now,
	}
}

// ExportPastWork 上传最近一次工作的快照并返回下载链接。
// 没有任何目标时返回 ErrNoPastWork。
func (e *ExportService) ExportPastWork(ctx context.Context) (*ExportReceipt, error) {
	pw, err := e.Plan.PastWork(ctx)
	if err != nil {
		return nil, err
	}

	now := e.now()
	body, err := json.MarshalIndent(pastWorkSnapshot{
		ExportedAt: now.UTC(),
		PastWork:   pw,
		Entries:    pw.Entries(),
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("序列化快照失败: %w", err)
	}

	key := exportKey(e.Prefix, pw.GoalID)
	if err := e.Store.UploadFile(ctx, e.Bucket, key, bytes.NewReader(body), int64(len(body)), "application/json"); err != nil {
		return nil, fmt.Errorf("上传快照失败: %w", err)
	}

	link, err := e.Store.PresignGet(ctx, e.Bucket, key, e.TTL)
	if err != nil {
		return nil, fmt.Errorf("生成下载链接失败: %w", err)
	}

	slog.Info("导出历史记录", "goal_id", pw.GoalID, "bucket", e.Bucket, "key", key)
	return &ExportReceipt{
		Bucket:    e.Bucket,
		Key:       key,
		URL:       link,
		ExpiresAt: now.Add(e.TTL),
	}, nil
}

// exportKey 形如 past-work/goal-3/<uuid>.json
func exportKey(prefix string, goalID int) string {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return fmt.Sprintf("%sgoal-%d/%s.json", prefix, goalID, uuid.NewString())
}
