package handlers

import (
	"net/http"
	"strconv"

	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	jsoniter "github.com/json-iterator/go"
	config "github.com/objectflow/ingester/internals/configuration"
	"github.com/objectflow/ingester/internals/ingestion"
	"github.com/objectflow/ingester/internals/models"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

var _metricReceiveFileCounter = kitprometheus.NewCounterFrom(stdprometheus.CounterOpts{
	Namespace:   config.MetricNamespace,
	ConstLabels: config.MetricPrometheusLabels,
	Name:        "handler_receive_file_total",
	Help:        "Manual ingestion requests by HTTP status",
}, []string{"status"})

// IngesterHandler is a basic struct allowing to setup a single orchestrator instance for all handlers
type IngesterHandler struct {
	orchestrator *ingestion.Orchestrator
}

// NewIngesterHandler returns a pointer to an IngesterHandler instance
func NewIngesterHandler(orchestrator *ingestion.Orchestrator) *IngesterHandler {
	return &IngesterHandler{orchestrator: orchestrator}
}

// ReceiveFile godoc
// @Title ReceiveFile
// @Description Entrypoint for manual file ingestion
// @tags Ingest
// @Resource /ingester
// @Router /ingester/file [post]
// @Accept json
// @Param file body models.FileRef true "File reference"
// @Success 200 "Status OK"
// @Failure 400 "Status Bad Request"
// @Failure 404 "Status Not Found"
// @Failure 422 "Status Unprocessable Entity"
// @Failure 502 "Status Bad Gateway"
func (handler *IngesterHandler) ReceiveFile(w http.ResponseWriter, r *http.Request) {
	zap.L().Debug("handlers.ReceiveFile()")

	var file models.FileRef
	if err := jsoniter.NewDecoder(r.Body).Decode(&file); err != nil {
		zap.L().Warn("Invalid file reference payload", zap.Error(err))
		writeStatus(w, http.StatusBadRequest)
		return
	}
	if file.Bucket == "" || file.Key == "" {
		zap.L().Warn("File reference missing bucket or key")
		writeStatus(w, http.StatusBadRequest)
		return
	}

	result, err := handler.orchestrator.ProcessFile(r.Context(), file)
	if err != nil {
		writeStatus(w, statusFromFailure(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeStatus(w, http.StatusOK)
	jsoniter.NewEncoder(w).Encode(map[string]interface{}{
		"attempt_id":   result.AttemptID,
		"state":        result.State.String(),
		"documents":    result.Documents,
		"target_table": result.Rule.TargetTable,
	})
}

// statusFromFailure maps an ingestion failure onto the closest HTTP status.
// Transient backend failures surface as 502 so callers know a retry can help.
func statusFromFailure(err error) int {
	switch ingestion.FailureKind(err) {
	case "no_rule":
		return http.StatusNotFound
	case "parse_failed":
		return http.StatusUnprocessableEntity
	case "fetch_failed", "store_failed":
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeStatus(w http.ResponseWriter, status int) {
	_metricReceiveFileCounter.With("status", strconv.Itoa(status)).Add(1)
	w.WriteHeader(status)
}
