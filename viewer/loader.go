package viewer

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// FailureMessage is shown in place of the preview when an asset cannot be
// loaded. Loads are not retried.
const FailureMessage = "模型加载失败"

// Failure reasons.
const (
	ReasonFetch        = "fetch"
	ReasonStatus       = "status"
	ReasonInvalidAsset = "invalid_asset"
)

// LoadResult is the outcome of loading an asset: either Loaded or Failed.
type LoadResult interface {
	loadResult()
}

// Loaded carries the bounding info of a successfully loaded asset.
type Loaded struct {
	Bounds BoundingInfo
}

// Failed describes why an asset could not be loaded.
type Failed struct {
	Reason string
	Err    error
}

func (Loaded) loadResult() {}
func (Failed) loadResult() {}

// Error implements error.
func (f Failed) Error() string {
	if f.Err == nil {
		return f.Reason
	}
	return fmt.Sprintf("%s: %v", f.Reason, f.Err)
}

// Unwrap returns the underlying error.
func (f Failed) Unwrap() error {
	return f.Err
}

// FetchBounds downloads a glTF asset and computes its bounding info. Any
// failure, including a non 200 response, is reported as Failed.
func FetchBounds(ctx context.Context, hc *http.Client, url string) LoadResult {
	if hc == nil {
		hc = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Failed{Reason: ReasonFetch, Err: errors.Wrap(err, "building asset request")}
	}
	resp, err := hc.Do(req)
	if err != nil {
		return Failed{Reason: ReasonFetch, Err: errors.Wrapf(err, "fetching %s", url)}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Failed{Reason: ReasonStatus, Err: errors.Errorf("fetching %s: %s", url, resp.Status)}
	}
	return LoadBounds(resp.Body)
}
