package grid

// Type is the widget variant. The layout engine only uses it to check that
// a widget's Config is the matching variant.
type Type string

const (
	TypeMetric  Type = "metric"
	TypeChart   Type = "chart"
	TypeInsight Type = "ml-insight"
)

// Valid reports whether t is a known widget type.
func (t Type) Valid() bool {
	switch t {
	case TypeMetric, TypeChart, TypeInsight:
		return true
	}
	return false
}

// ChartKind selects the chart a chart widget renders.
type ChartKind string

const (
	ChartLine    ChartKind = "line"
	ChartBar     ChartKind = "bar"
	ChartScatter ChartKind = "scatter"
	ChartHeatmap ChartKind = "heatmap"
)

// ChartKinds lists the chart kinds in the order new charts cycle through them.
var ChartKinds = []ChartKind{ChartLine, ChartBar, ChartScatter, ChartHeatmap}

// Config is the per-type payload of a widget. It is a closed set: the only
// implementations are MetricConfig, ChartConfig and InsightConfig.
type Config interface {
	WidgetType() Type
	sealed()
}

// MetricConfig binds a metric widget to a metric.
type MetricConfig struct {
	MetricID string
}

// ChartConfig selects the chart a chart widget renders.
type ChartConfig struct {
	Kind ChartKind
}

// InsightConfig binds an ML insight widget to an insight.
type InsightConfig struct {
	InsightID string
}

func (MetricConfig) WidgetType() Type  { return TypeMetric }
func (ChartConfig) WidgetType() Type   { return TypeChart }
func (InsightConfig) WidgetType() Type { return TypeInsight }

func (MetricConfig) sealed()  {}
func (ChartConfig) sealed()   {}
func (InsightConfig) sealed() {}

// Widget is a placed dashboard widget.
type Widget struct {
	ID       string
	Type     Type
	Title    string
	Position Position
	Size     Size
	Config   Config
}

// checkConfig reports ErrConfigMismatch unless cfg is the variant for t.
func checkConfig(t Type, cfg Config) error {
	if cfg == nil || cfg.WidgetType() != t {
		return ErrConfigMismatch
	}
	return nil
}
