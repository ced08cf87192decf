package cli

var (
	RenderChart = renderChart
	RunReport   = runReport
)
