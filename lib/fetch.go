package changewallpaperlib

import (
	"context"
	"errors"
	"fmt"
	"image"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/awused/composite-wallpapers/composite"
	"github.com/disintegration/imaging"
)

var ErrFetchFailure = errors.New("fetch failed")

// FetchError is a non-success response from the image endpoint.
type FetchError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching [%s]: %s", e.URL, e.Status)
}

func (e *FetchError) Unwrap() error {
	return ErrFetchFailure
}

// Fetcher downloads one image per monitor from an endpoint parameterized by
// the monitor's resolution.
type Fetcher struct {
	Client *http.Client
	// {width} and {height} are substituted
	URLTemplate string
}

func NewFetcher(c *Config) *Fetcher {
	// Zero means no timeout
	return &Fetcher{
		Client:      &http.Client{Timeout: c.fetchTimeout},
		URLTemplate: c.FetchURL,
	}
}

func (f *Fetcher) URLFor(width, height int) string {
	return strings.NewReplacer(
		"{width}", strconv.Itoa(width),
		"{height}", strconv.Itoa(height),
	).Replace(f.URLTemplate)
}

func (f *Fetcher) Fetch(ctx context.Context, width, height int) (image.Image, error) {
	url := f.URLFor(width, height)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: [%s]: %w", ErrFetchFailure, url, err)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: [%s]: %w", ErrFetchFailure, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	img, err := imaging.Decode(resp.Body, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: decoding [%s]: %w", composite.ErrInvalidImage, url, err)
	}

	logger.Debug().Str("url", url).Stringer("size", img.Bounds().Size()).Msg("Fetched image")
	return img, nil
}

// FetchAll gets an image for every monitor, in monitor order. When parallel is
// set every request runs at once. The first failure by monitor order is
// returned.
func (f *Fetcher) FetchAll(
	ctx context.Context, monitors []composite.Monitor, parallel bool) (
	[]image.Image, error) {

	if f.URLTemplate == "" {
		return nil, fmt.Errorf("No FetchURL configured")
	}

	images := make([]image.Image, len(monitors))
	errs := make([]error, len(monitors))

	if !parallel {
		for i, m := range monitors {
			img, err := f.Fetch(ctx, m.Width, m.Height)
			if err != nil {
				return nil, fmt.Errorf("monitor %d (%s): %w", i, m, err)
			}
			images[i] = img
		}
		return images, nil
	}

	var wg sync.WaitGroup
	for i, m := range monitors {
		wg.Add(1)

		go func(i int, m composite.Monitor) {
			images[i], errs[i] = f.Fetch(ctx, m.Width, m.Height)
			wg.Done()
		}(i, m)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("monitor %d (%s): %w", i, monitors[i], err)
		}
	}
	return images, nil
}
