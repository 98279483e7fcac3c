package repository

import (
	"github.com/diillson/cancer-stats-dashboard-go/internal/domain/entity"
)

// ChartRenderer turns a chart description into an image.
type ChartRenderer interface {
	RenderPNG(chart entity.Chart, width, height int) ([]byte, error)
}
