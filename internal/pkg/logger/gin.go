package logger

import (
	"Inkwell/internal/api/config"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

type accessLine struct {
	Time        string `json:"time"`
	Level       string `json:"level"`
	Msg         string `json:"msg"`
	TraceID     string `json:"trace_id"`
	LogToken    string `json:"log_token,omitempty"`
	TargetIndex string `json:"target_index,omitempty"`
	Method      string `json:"method"`
	Path        string `json:"path"`
	ClientIP    string `json:"client_ip"`
	Status      int    `json:"status"`
	Latency     string `json:"latency"`
}

// SetupGin 注册访问日志与 panic 恢复中间件
func SetupGin(r *gin.Engine, cfg config.LogstashConfig) {
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Output:    LogWriter,
		SkipPaths: []string{"/ping"},
		Formatter: func(p gin.LogFormatterParams) string {
			traceID, _ := p.Keys[TraceIDKey].(string)
			if traceID == "" && p.Request != nil {
				traceID = TraceID(p.Request.Context())
			}

			level := "INFO"
			if p.StatusCode >= 500 {
				level = "ERROR"
			}

			line, _ := json.Marshal(accessLine{
				Time:        p.TimeStamp.Format(time.RFC3339),
				Level:       level,
				Msg:         "GIN_ACCESS",
				TraceID:     traceID,
				LogToken:    cfg.Token,
				TargetIndex: cfg.Index,
				Method:      p.Method,
				Path:        p.Path,
				ClientIP:    p.ClientIP,
				Status:      p.StatusCode,
				Latency:     p.Latency.String(),
			})
			return string(line) + "\n"
		},
	}))

	r.Use(gin.Recovery())
}
