package geo

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/oschwald/maxminddb-golang"
)

// Unknown is substituted for any field a lookup cannot resolve.
const Unknown = "Unknown"

type Result struct {
	Country string
	City    string
}

// Resolver resolves visitor IPs to coarse location data. A local MaxMind
// database is consulted first when configured; otherwise an ipapi-style
// HTTP collaborator is queried. Lookups are best-effort telemetry: every
// failure path degrades to Unknown/Unknown and never returns an error.
type Resolver struct {
	mmdb     *maxminddb.Reader
	endpoint string
	client   *http.Client
}

// New builds a Resolver. endpoint may be empty (HTTP lookups disabled),
// mmdbPath may be empty (local lookups disabled).
func New(endpoint, mmdbPath string, timeout time.Duration) (*Resolver, error) {
	r := &Resolver{
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   &http.Client{Timeout: timeout},
	}
	if mmdbPath != "" {
		db, err := maxminddb.Open(mmdbPath)
		if err != nil {
			return nil, fmt.Errorf("open geoip database: %w", err)
		}
		r.mmdb = db
	}
	return r, nil
}

func (r *Resolver) Close() {
	if r != nil && r.mmdb != nil {
		r.mmdb.Close()
	}
}

// Lookup resolves an IP, never failing. Safe on a nil Resolver.
func (r *Resolver) Lookup(ipStr string) Result {
	if r == nil {
		return Result{Country: Unknown, City: Unknown}
	}
	if res, ok := r.lookupLocal(ipStr); ok {
		return res
	}
	if res, ok := r.lookupHTTP(ipStr); ok {
		return res
	}
	return Result{Country: Unknown, City: Unknown}
}

func (r *Resolver) lookupLocal(ipStr string) (Result, bool) {
	if r.mmdb == nil {
		return Result{}, false
	}
	ip := net.ParseIP(ipStr)
	if ip == nil {
		return Result{}, false
	}

	var record struct {
		Country struct {
			Names map[string]string `maxminddb:"names"`
		} `maxminddb:"country"`
		City struct {
			Names map[string]string `maxminddb:"names"`
		} `maxminddb:"city"`
	}
	if err := r.mmdb.Lookup(ip, &record); err != nil {
		return Result{}, false
	}

	country := record.Country.Names["en"]
	if country == "" {
		return Result{}, false
	}
	city := record.City.Names["en"]
	if city == "" {
		city = Unknown
	}
	return Result{Country: country, City: city}, true
}

func (r *Resolver) lookupHTTP(ipStr string) (Result, bool) {
	if r.endpoint == "" || ipStr == "" {
		return Result{}, false
	}

	resp, err := r.client.Get(r.endpoint + "/" + ipStr + "/json/")
	if err != nil {
		return Result{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, false
	}

	var payload struct {
		CountryName string `json:"country_name"`
		City        string `json:"city"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Result{}, false
	}

	res := Result{Country: payload.CountryName, City: payload.City}
	if res.Country == "" {
		res.Country = Unknown
	}
	if res.City == "" {
		res.City = Unknown
	}
	return res, true
}
