package clients

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// RequestSpec describes one outbound call independently of any transport.
type RequestSpec struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
}

// hyperStatRequest describes GET <path>?ocid=&date= with the API key header.
// An empty date is left out so the Open API answers with the latest snapshot.
func hyperStatRequest(path, keyHeader, ocid, date, apiKey string) RequestSpec {
	query := url.Values{}
	query.Set("ocid", ocid)
	if date != "" {
		query.Set("date", date)
	}

	header := http.Header{}
	header.Set(keyHeader, apiKey)
	header.Set("Accept", "application/json")

	return RequestSpec{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
		Header: header,
	}
}

func (rs RequestSpec) build(ctx context.Context, baseURL string) (*http.Request, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/") + rs.Path)
	if err != nil {
		return nil, err
	}
	u.RawQuery = rs.Query.Encode()

	req, err := http.NewRequestWithContext(ctx, rs.Method, u.String(), nil)
	if err != nil {
		return nil, err
	}
	for k, v := range rs.Header {
		req.Header[k] = v
	}
	return req, nil
}
