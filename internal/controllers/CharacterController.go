package controllers

import (
	"net/http"

	"hyperstat/internal/codec"
	"hyperstat/internal/providers"
	"hyperstat/internal/services"
)

type CharacterController struct {
	logger  providers.Logger
	service services.HyperStatServiceInterface
	cache   providers.CacheProviderInterface
	decoder *codec.HyperStatDecoder
}

func NewCharacterController(logger providers.Logger, service services.HyperStatServiceInterface, cache providers.CacheProviderInterface, decoder *codec.HyperStatDecoder) *CharacterController {
	return &CharacterController{
		logger:  logger,
		service: service,
		cache:   cache,
		decoder: decoder,
	}
}

func hyperStatCacheKey(q services.Query) string {
	return "hyperstat:" + q.OCID + ":" + q.Date
}

// GetHyperStat answers GET /character/hyper-stat?ocid=&date= with the
// snapshot re-encoded in the upstream wire convention.
func (cc *CharacterController) GetHyperStat(w http.ResponseWriter, r *http.Request) {
	q := cc.service.Resolve(services.Query{
		OCID: r.URL.Query().Get("ocid"),
		Date: r.URL.Query().Get("date"),
	})
	cacheKey := hyperStatCacheKey(q)

	if data, ok := cc.cache.Get(cacheKey); ok {
		writeJSON(w, data)
		return
	}

	snapshot, err := cc.service.Fetch(r.Context(), q)
	if err != nil {
		cc.logger.Warnf(providers.GetLogTypeByRequestType(r.Method), "%s %s: %s", r.Method, r.URL.Path, err)
		writeProblem(w, r, err)
		return
	}

	body, err := cc.decoder.Encode(snapshot)
	if err != nil {
		cc.logger.Errorf(providers.TypeApp, "Encode snapshot: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	cc.cache.Set(cacheKey, body)
	writeJSON(w, body)
}

func writeJSON(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
