package fingerprint

type settings struct {
	useIP            bool
	useUserAgent     bool
	useAcceptHeaders bool
	useHeaderSet     bool
}

// Option adjusts which request characteristics feed the fingerprint.
type Option func(*settings)

// WithIP mixes the client IP into the fingerprint. Roaming clients
// change addresses constantly, so only strict profiles want this.
func WithIP() Option {
	return func(s *settings) {
		s.useIP = true
	}
}

// WithoutUserAgent drops the User-Agent header from the fingerprint.
func WithoutUserAgent() Option {
	return func(s *settings) {
		s.useUserAgent = false
	}
}

// WithoutAcceptHeaders drops the Accept family, which shifts with
// content negotiation and browser language settings.
func WithoutAcceptHeaders() Option {
	return func(s *settings) {
		s.useAcceptHeaders = false
	}
}

// WithoutHeaderSet drops the header presence component.
func WithoutHeaderSet() Option {
	return func(s *settings) {
		s.useHeaderSet = false
	}
}

func applyOptions(opts []Option) settings {
	s := settings{
		useUserAgent:     true,
		useAcceptHeaders: true,
		useHeaderSet:     true,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
