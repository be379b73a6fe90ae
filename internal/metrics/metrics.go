package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 录入实体类型，作为指标标签
const (
	EntityGoal           = "goal"
	EntityProficiency    = "proficiency"
	EntitySLO            = "slo"
	EntityAssessmentArea = "assessment_area"
	EntityCourse         = "course"
)

// Collector 录入相关的指标
type Collector struct {
	registry    *prometheus.Registry
	rowsCreated *prometheus.CounterVec
	submissions *prometheus.CounterVec
}

// NewCollector 创建指标收集器，使用独立的 registry
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	c := &Collector{
		registry: reg,
		rowsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "programplan",
			Name:      "rows_created_total",
			Help:      "Rows inserted per entity.",
		}, []string{"entity"}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "programplan",
			Name:      "form_submissions_total",
			Help:      "Form submissions per form and outcome.",
		}, []string{"form", "outcome"}),
	}
	reg.MustRegister(c.rowsCreated, c.submissions)
	reg.MustRegister(collectors.NewGoCollector())
	return c
}

// RecordCreated 记录插入的行数，nil 收集器直接忽略
func (c *Collector) RecordCreated(entity string, n int) {
	if c == nil || n <= 0 {
		return
	}
	c.rowsCreated.WithLabelValues(entity).Add(float64(n))
}

// RecordSubmission 记录一次表单提交
func (c *Collector) RecordSubmission(form string, err error) {
	if c == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	c.submissions.WithLabelValues(form, outcome).Inc()
}

// Registry 返回底层 registry，供测试读取
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler 返回 /metrics 的 http.Handler
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
