package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	inHttp "github.com/Alturino/storefront/internal/http"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/product/pkg/response"
)

var ErrRemoteCatalog = errors.New("remote catalog unavailable")

// FetchProducts downloads the full, unfiltered product list served by another
// storefront at baseURL.
func FetchProducts(c context.Context, baseURL string) ([]response.Product, error) {
	url := strings.TrimRight(baseURL, "/") + "/products"
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "catalog FetchProducts").
		Str(log.KeyRequestURL, url).
		Str(log.KeyProcess, "fetching remote products").
		Logger()

	logger.Info().Msg("fetching remote products")
	req, err := http.NewRequestWithContext(c, http.MethodGet, url, nil)
	if err != nil {
		err = fmt.Errorf("failed creating request with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	if requestId := log.RequestIDFromContext(c); requestId != "" {
		req.Header.Add(inHttp.KeyHeaderRequestID, requestId)
	}

	resp, err := otelhttp.DefaultClient.Do(req)
	if err != nil {
		err = fmt.Errorf("failed fetching remote products with error=%w", errors.Join(ErrRemoteCatalog, err))
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("failed fetching remote products status=%d with error=%w", resp.StatusCode, ErrRemoteCatalog)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}

	body := struct {
		Data struct {
			Products []response.Product `json:"products"`
		} `json:"data"`
	}{}
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		err = fmt.Errorf("failed decoding remote products with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	if body.Data.Products == nil {
		body.Data.Products = []response.Product{}
	}
	logger.Info().Int(log.KeyProductsCount, len(body.Data.Products)).Msg("fetched remote products")

	return body.Data.Products, nil
}
