package validators

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeResolver struct {
	mx  map[string][]*net.MX
	ips map[string][]net.IPAddr
}

func (f fakeResolver) LookupMX(_ context.Context, name string) ([]*net.MX, error) {
	if mx, ok := f.mx[name]; ok {
		return mx, nil
	}
	return nil, errors.New("no such host")
}

func (f fakeResolver) LookupIPAddr(_ context.Context, host string) ([]net.IPAddr, error) {
	if ips, ok := f.ips[host]; ok {
		return ips, nil
	}
	return nil, errors.New("no such host")
}

func TestEmailDomainChecker(t *testing.T) {
	checker := NewEmailDomainChecker(fakeResolver{
		mx:  map[string][]*net.MX{"gmail.com": {{Host: "mx.gmail.com.", Pref: 10}}},
		ips: map[string][]net.IPAddr{"barbearia.com.br": {{IP: net.ParseIP("10.0.0.1")}}},
	})

	assert.True(t, checker.Valid("joao@gmail.com"))
	assert.True(t, checker.Valid("contato@Barbearia.com.br"))
	assert.False(t, checker.Valid("joao@dominio-inexistente.com"))
	assert.False(t, checker.Valid("sem-arroba"))
	assert.False(t, checker.Valid("joao@"))
	assert.False(t, checker.Valid("@gmail.com"))
	assert.False(t, checker.Valid("joao@localhost"))
}
