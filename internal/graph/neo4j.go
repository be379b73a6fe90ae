package graph

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Peezy0/Accel1/internal/config"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Neo4jClient Neo4j客户端
type Neo4jClient struct {
	driver neo4j.DriverWithContext
	config config.Neo4jConfig
}

// NewNeo4jClient 创建新的Neo4j客户端
func NewNeo4jClient(ctx context.Context, cfg config.Neo4jConfig) (*Neo4jClient, error) {
	driver, err := neo4j.NewDriverWithContext(
		cfg.URI,
		neo4j.BasicAuth(cfg.Username, cfg.Password, ""),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Neo4j driver: %w", err)
	}

	client := &Neo4jClient{
		driver: driver,
		config: cfg,
	}

	// 测试连接
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("failed to connect to Neo4j: %w", err)
	}

	// 创建约束
	if err := client.createConstraints(ctx); err != nil {
		slog.Warn("创建图谱约束失败", "error", err)
	}

	return client, nil
}

// Close 关闭连接
func (c *Neo4jClient) Close(ctx context.Context) error {
	return c.driver.Close(ctx)
}

// createConstraints 每类节点的 id 唯一
func (c *Neo4jClient) createConstraints(ctx context.Context) error {
	for _, label := range []string{LabelGoal, LabelSLO, LabelAssessmentArea, LabelProficiency, LabelCourse} {
		query := fmt.Sprintf("CREATE CONSTRAINT %s_id_unique IF NOT EXISTS FOR (n:%s) REQUIRE n.id IS UNIQUE", label, label)
		if err := c.RunWrite(ctx, Statement{Query: query}); err != nil {
			return fmt.Errorf("failed to create unique constraint on %s: %w", label, err)
		}
	}
	return nil
}

// RunWrite 在写事务中执行一条语句
func (c *Neo4jClient) RunWrite(ctx context.Context, stmt Statement) error {
	session := c.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: c.config.Database,
	})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		_, err := tx.Run(ctx, stmt.Query, stmt.Params)
		return nil, err
	})
	return err
}
