package pkg

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIPIsLocal(t *testing.T) {
	cases := []struct {
		addr            string
		expectedIsLocal bool
	}{
		{addr: "83.12.53.65:2145", expectedIsLocal: false},
		{addr: "127.23.0.1:35325", expectedIsLocal: false},
		{addr: "127.0.0.1:35325", expectedIsLocal: true},
		{addr: "172.20.0.1:60102", expectedIsLocal: true},
		{addr: "172.200.0.1:60096", expectedIsLocal: true},
		{addr: "172.19.0.1:42452", expectedIsLocal: true},
		{addr: "83.12.53.65:214", expectedIsLocal: false},
		{addr: "111.12.56.65:8080", expectedIsLocal: false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expectedIsLocal, IPIsLocal(tc.addr), tc.addr)
	}
}

func TestClientIP(t *testing.T) {
	cases := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		expected   string
	}{
		{name: "remote addr", remoteAddr: "83.12.53.65:2145", expected: "83.12.53.65"},
		{name: "local", remoteAddr: "127.0.0.1:51000", expected: "localhost"},
		{name: "docker bridge", remoteAddr: "172.19.0.1:42452", expected: "localhost"},
		{name: "ipv6", remoteAddr: "[2001:db8::1]:8080", expected: "2001:db8::1"},
		{
			name:       "real ip header",
			remoteAddr: "172.19.0.1:42452",
			headers:    map[string]string{"X-Real-Ip": "91.10.1.2"},
			expected:   "91.10.1.2",
		},
		{
			name:       "forwarded for chain",
			remoteAddr: "172.19.0.1:42452",
			headers:    map[string]string{"X-Forwarded-For": "91.10.1.3, 10.0.0.1"},
			expected:   "91.10.1.3",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tc.remoteAddr
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tc.expected, ClientIP(req))
		})
	}
}
