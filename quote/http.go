package quote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"

	stockledger "github.com/jwen/stockledger"
)

// HTTP fetches quotes from a JSON endpoint. The endpoint URL and the
// locations of the interesting values inside the response are configured as
// a URL pattern and jsonpath expressions, so switching data vendors is a
// configuration change, not a code change.
type HTTP struct {
	Client *http.Client
	// URL is a pattern with %s placeholders for the exchange prefix and the
	// bare code, e.g. "https://api.example.com/quote/%s%s".
	URL string

	// jsonpath expressions into the response document.
	PricePath  string
	NamePath   string
	ChangePath string // optional
}

func (h *HTTP) client() *http.Client {
	if h.Client != nil {
		return h.Client
	}
	return http.DefaultClient
}

func (h *HTTP) Price(ctx context.Context, code string) (Quote, error) {
	addr := fmt.Sprintf(h.URL, Exchange(code), code)

	var jobj any
	if err := jwget(ctx, h.client(), addr, &jobj); err != nil {
		return Quote{}, fmt.Errorf("error retrieving %q: %w", code, err)
	}

	price, err := floatAt(jobj, h.PricePath)
	if err != nil {
		return Quote{}, fmt.Errorf("error parsing price for %q: %w", code, err)
	}
	if price == 0 {
		// Suspended stocks report a zero price; that is not a quote.
		return Quote{}, fmt.Errorf("no price for %q", code)
	}

	q := Quote{
		Code:  code,
		Price: stockledger.M(price),
		Time:  time.Now(),
	}
	if h.NamePath != "" {
		if name, err := stringAt(jobj, h.NamePath); err == nil {
			q.Name = name
		}
	}
	if h.ChangePath != "" {
		if change, err := floatAt(jobj, h.ChangePath); err == nil {
			q.Change = stockledger.M(change)
			prev := price - change
			if prev != 0 {
				q.ChangePercent = stockledger.Percent(change / prev * 100)
			}
		}
	}
	return q, nil
}

// jwget GETs a JSON document into data.
func jwget(ctx context.Context, client *http.Client, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), data)
}

// floatAt evaluates a jsonpath expression expecting a number. Vendors
// occasionally serve numbers as strings, sometimes with a decimal comma;
// both are tolerated.
func floatAt(jobj any, path string) (float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", path, err)
	}
	// jsonpath is never clear about whether it returns a list of one answer
	// or a single answer; keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	switch v := jval.(type) {
	case float64:
		return v, nil
	case string:
		s := strings.ReplaceAll(strings.ReplaceAll(v, ",", "."), " ", "")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%q: invalid number %q: %w", path, v, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%q: not a number: %v", path, jval)
	}
}

func stringAt(jobj any, path string) (string, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return "", fmt.Errorf("%q: %w", path, err)
	}
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	s, ok := jval.(string)
	if !ok {
		return "", fmt.Errorf("%q: not a string: %v", path, jval)
	}
	return s, nil
}
