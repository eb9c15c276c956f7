package dashboard

// Component IDs shared with the page.
const (
	ScatterPlot1    = "scatter-plot-1"
	ScatterPlot2    = "scatter-plot-2"
	ScatterPlot3    = "scatter-plot-3"
	ScatterPlot4    = "scatter-plot-4"
	MapGraph        = "map-graph"
	TimeSeriesGraph = "time-series-graph"

	ResetButton       = "reset-button"
	ThemeSelector     = "theme-selector"
	LocationChecklist = "location-checklist"
	ColorSelector     = "color-selector"
	SizeSelector      = "size-selector"
)

// ScatterOutputs lists the scatter plot IDs in the order of chart.ScatterSpecs.
var ScatterOutputs = [4]string{ScatterPlot1, ScatterPlot2, ScatterPlot3, ScatterPlot4}
