package ping

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"
)

const resolvConfPath = "/etc/resolv.conf"

type SRVResolverInterface interface {
	// LookupMinecraft returns the target of the _minecraft._tcp record for host.
	LookupMinecraft(ctx context.Context, host string) (string, uint16, bool)
}

type SRVResolver struct {
	config *dns.ClientConfig
	client *dns.Client
}

// NewSRVResolver reads the system resolver config. Without one, lookups
// always miss and probes dial the host directly.
func NewSRVResolver() SRVResolverInterface {
	conf, err := dns.ClientConfigFromFile(resolvConfPath)
	if err != nil || len(conf.Servers) == 0 {
		return &SRVResolver{}
	}
	return &SRVResolver{
		config: conf,
		client: &dns.Client{Timeout: time.Duration(conf.Timeout) * time.Second},
	}
}

func (r *SRVResolver) LookupMinecraft(ctx context.Context, host string) (string, uint16, bool) {
	if r.config == nil || net.ParseIP(host) != nil {
		return "", 0, false
	}

	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn("_minecraft._tcp."+host), dns.TypeSRV)

	for _, server := range r.config.Servers {
		resp, _, err := r.client.ExchangeContext(ctx, m, net.JoinHostPort(server, r.config.Port))
		if err != nil {
			continue
		}
		if resp.Rcode != dns.RcodeSuccess {
			return "", 0, false
		}
		for _, ans := range resp.Answer {
			if srv, ok := ans.(*dns.SRV); ok {
				return strings.TrimSuffix(srv.Target, "."), srv.Port, true
			}
		}
		return "", 0, false
	}
	return "", 0, false
}
