package reference

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// HTMLProvider scrapes reference averages from a published HTML table.
// Expected row layout: source name, crop, index, average, reliability.
type HTMLProvider struct {
	url      string
	client   *http.Client
	maxBytes int64
}

func NewHTMLProvider(url string) *HTMLProvider {
	return &HTMLProvider{
		url:      url,
		client:   &http.Client{Timeout: 20 * time.Second},
		maxBytes: 1500000,
	}
}

func (p *HTMLProvider) FetchReferences(crop, index string) ([]Record, error) {
	resp, err := p.client.Get(p.url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reference source returned %s", resp.Status)
	}
	ct := strings.ToLower(resp.Header.Get("Content-Type"))
	if !strings.Contains(ct, "text/html") {
		return nil, fmt.Errorf("unsupported content-type: %s", ct)
	}

	limited := io.LimitedReader{R: resp.Body, N: p.maxBytes}
	doc, err := goquery.NewDocumentFromReader(&limited)
	if err != nil {
		return nil, err
	}

	wantCrop := strings.ToLower(strings.TrimSpace(crop))
	wantIndex := strings.ToUpper(strings.TrimSpace(index))

	var out []Record
	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 5 {
			return
		}
		cell := func(i int) string { return strings.TrimSpace(cells.Eq(i).Text()) }

		if strings.ToUpper(cell(2)) != wantIndex {
			return
		}
		rowCrop := strings.ToLower(cell(1))
		if wantCrop != "" && rowCrop != wantCrop && rowCrop != "any" {
			return
		}
		avg, err := strconv.ParseFloat(cell(3), 64)
		if err != nil {
			return
		}
		out = append(out, Record{
			Name:        cell(0),
			Average:     avg,
			Reliability: ReliabilityTier(strings.ToLower(cell(4))),
			CropType:    rowCrop,
			Source:      SourceExternal,
		})
	})
	if len(out) == 0 {
		return nil, fmt.Errorf("no reference rows for %s/%s", crop, index)
	}
	return out, nil
}
