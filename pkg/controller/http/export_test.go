package http

// Test-only accessor for origin matching
func (m *Middleware) AllowOrigin(origin string) string {
	return m.allowOrigin(origin)
}
