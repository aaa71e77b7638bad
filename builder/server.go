package builder

import (
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/erraggy/asyncspec/descriptor"
	"github.com/erraggy/asyncspec/internal/pathutil"
	"github.com/erraggy/asyncspec/spec"
)

// Server names assigned by buildServers.
const (
	// SingleServerName names the only server when the broker has one URL.
	SingleServerName = "development"
	// ServerNamePrefix prefixes the 1-based index of each server otherwise.
	ServerNamePrefix = "Server"
)

// buildServers turns the broker URLs into named server records that share
// the broker metadata. It returns the names in input order. Identical URLs
// are not deduplicated.
func buildServers(urls []string, meta descriptor.BrokerMetadata) (map[string]*spec.Server, []string, error) {
	if len(urls) == 0 {
		return nil, nil, nil
	}

	var security []*spec.Reference
	if meta.Security != nil {
		for _, req := range meta.Security.Requirement() {
			names := make([]string, 0, len(req))
			for name := range req {
				names = append(names, name)
			}
			slices.Sort(names)
			for _, name := range names {
				security = append(security, spec.Ref(pathutil.SecuritySchemeRef(name)))
			}
		}
	}

	servers := make(map[string]*spec.Server, len(urls))
	names := make([]string, 0, len(urls))
	for i, raw := range urls {
		host, pathname, scheme, err := splitServerURL(raw)
		if err != nil {
			return nil, nil, NewServerError(raw, "cannot parse broker URL", err)
		}
		protocol := meta.Protocol
		if protocol == "" {
			protocol = scheme
		}
		if protocol == "" {
			return nil, nil, NewServerError(raw, "no protocol in broker metadata or URL scheme", nil)
		}

		name := SingleServerName
		if len(urls) > 1 {
			name = ServerNamePrefix + strconv.Itoa(i+1)
		}
		servers[name] = &spec.Server{
			Host:            host,
			Protocol:        protocol,
			ProtocolVersion: meta.ProtocolVersion,
			Pathname:        pathname,
			Description:     meta.Description,
			Tags:            meta.Tags,
			Security:        security,
		}
		names = append(names, name)
	}
	return servers, names, nil
}

// splitServerURL parses a broker URL into host and pathname. A URL without
// "://" is treated as a network location ("localhost:9092" parses as host
// "localhost:9092"). User info is never copied into the host.
func splitServerURL(raw string) (host, pathname, scheme string, err error) {
	s := raw
	if !strings.Contains(s, "://") {
		s = "//" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", "", "", err
	}
	return u.Host, u.Path, u.Scheme, nil
}
