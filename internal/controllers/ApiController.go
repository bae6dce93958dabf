package controllers

import (
	json "github.com/goccy/go-json"
	"github.com/gookit/validate"
	"github.com/spf13/cast"
	"mcstatus/internal/models"
	"mcstatus/internal/providers"
	"mcstatus/internal/services"
	"mcstatus/internal/structures"
	"net/http"
	"strconv"
	"strings"
)

const maxAddressLength = 255

type ApiController struct {
	logger  providers.Logger
	service services.StatusServiceInterface
	cache   providers.CacheProviderInterface
	config  *structures.Config
}

func NewApiController(logger providers.Logger, service services.StatusServiceInterface, cache providers.CacheProviderInterface, config *structures.Config) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
		cache:   cache,
		config:  config,
	}
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, r *http.Request, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		ac.logger.Errorf(providers.TypeHttp, "Failed to encode response: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// An abandoned request may carry a half-done resolve; keep it out of the cache.
	if r.Context().Err() == nil {
		ac.cache.Set(cacheKey, gson)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// GetStatus resolves ?address=&protocol=&identicon= and answers with the
// status as JSON. Unreachable servers are still a 200; only bad queries fail.
func (ac *ApiController) GetStatus(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	address := strings.TrimSpace(query.Get("address"))
	rawProtocol := query.Get("protocol")

	v := validate.Map(map[string]interface{}{
		"address":  address,
		"protocol": rawProtocol,
	})
	v.StringRule("address", "required|maxLen:"+strconv.Itoa(maxAddressLength))
	v.StringRule("protocol", "protocol")
	if !v.Validate() {
		http.Error(w, "Bad Request: "+v.Errors.One(), http.StatusBadRequest)
		return
	}

	protocol, err := models.ParseProtocolType(rawProtocol)
	if err != nil {
		http.Error(w, "Bad Request: "+err.Error(), http.StatusBadRequest)
		return
	}

	alwaysUseIdenticon := ac.config.Identicon.Always
	if raw := query.Get("identicon"); raw != "" {
		alwaysUseIdenticon, err = cast.ToBoolE(raw)
		if err != nil {
			http.Error(w, "Bad Request: identicon must be a boolean", http.StatusBadRequest)
			return
		}
	}

	identity := models.NewIdentity(address, protocol)
	cacheKey := providers.StatusCacheKey(identity, alwaysUseIdenticon)
	ac.serveFromCacheOrCompute(w, r, cacheKey, func() (any, error) {
		status := ac.service.Resolve(r.Context(), address, protocol, ac.config.Storage.DataRoot, alwaysUseIdenticon)
		return models.NewStatusResponse(status), nil
	})
}
