package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"AuctionLedger/internal/ingestion"
	"AuctionLedger/internal/observability"
	"AuctionLedger/internal/persistence"
	"AuctionLedger/internal/projection"
	"AuctionLedger/internal/query"
)

// GRPCServer wraps the gRPC server and the HTTP/JSON mux.
type GRPCServer struct {
	grpcServer    *grpc.Server
	httpServer    *http.Server
	grpcAddr      string
	httpAddr      string
	deps          *ServerDeps
	healthChecker *observability.HealthChecker
}

// ServerDeps holds all dependencies needed by the API services.
type ServerDeps struct {
	DB            *sql.DB
	QueryService  *query.QueryService
	IngestService *ingestion.GRPCIngestService
	SnapshotMgr   *persistence.SnapshotManager
	StartTime     time.Time
	HealthChecker *observability.HealthChecker
}

// NewGRPCServer creates a new gRPC server with health and reflection
// registered. Typed service stubs hang off the same server once their
// protobuf definitions are generated; until then the HTTP mux carries
// the full API surface.
func NewGRPCServer(grpcAddr, httpAddr string, deps *ServerDeps) *GRPCServer {
	grpcServer := grpc.NewServer()

	// Health check
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	// Reflection for grpcurl / grpcui
	reflection.Register(grpcServer)

	return &GRPCServer{
		grpcServer:    grpcServer,
		grpcAddr:      grpcAddr,
		httpAddr:      httpAddr,
		deps:          deps,
		healthChecker: deps.HealthChecker,
	}
}

// StartGRPC starts the gRPC server (blocking).
func (s *GRPCServer) StartGRPC(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.grpcAddr)
	if err != nil {
		return fmt.Errorf("grpc listen: %w", err)
	}

	go func() {
		<-ctx.Done()
		log.Println("INFO: gRPC server shutting down...")
		s.grpcServer.GracefulStop()
	}()

	log.Printf("INFO: gRPC server listening on %s", s.grpcAddr)
	return s.grpcServer.Serve(lis)
}

// StartHTTPGateway starts the HTTP/JSON API (blocking). HTTP/JSON is
// served for tooling, dashboards, and curl.
func (s *GRPCServer) StartHTTPGateway(ctx context.Context) error {
	mux := runtime.NewServeMux()

	if err := s.registerQueryRoutes(mux); err != nil {
		return fmt.Errorf("register query routes: %w", err)
	}
	if err := s.registerAdminRoutes(mux); err != nil {
		return fmt.Errorf("register admin routes: %w", err)
	}

	httpMux := http.NewServeMux()
	if s.healthChecker != nil {
		httpMux.HandleFunc("/healthz", s.healthChecker.LivenessHandler)
		httpMux.HandleFunc("/readyz", s.healthChecker.ReadinessHandler)
	} else {
		httpMux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, `{"status":"ok"}`)
		})
	}
	httpMux.Handle("/", mux)

	s.httpServer = &http.Server{
		Addr:    s.httpAddr,
		Handler: httpMux,
	}

	go func() {
		<-ctx.Done()
		log.Println("INFO: HTTP gateway shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.httpServer.Shutdown(shutdownCtx)
	}()

	log.Printf("INFO: HTTP gateway listening on %s (gRPC on %s)", s.httpAddr, s.grpcAddr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// ============================================================================
// Query routes
// ============================================================================

func (s *GRPCServer) registerQueryRoutes(mux *runtime.ServeMux) error {
	qs := s.deps.QueryService

	err := mux.HandlePath("GET", "/v1/bidders/{bidder_id}/balance",
		func(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
			bidderID, err := uuid.Parse(pathParams["bidder_id"])
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid bidder_id: %v", err)
				return
			}

			bal, err := qs.GetBidderBalance(r.Context(), bidderID, assetParam(r))
			if err != nil {
				writeError(w, http.StatusInternalServerError, "get balance: %v", err)
				return
			}
			writeJSON(w, bal)
		})
	if err != nil {
		return err
	}

	err = mux.HandlePath("GET", "/v1/bidders/{bidder_id}/journals",
		func(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
			bidderID, err := uuid.Parse(pathParams["bidder_id"])
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid bidder_id: %v", err)
				return
			}

			entries, err := qs.GetJournalHistory(r.Context(), bidderID,
				pageSizeParam(r, 100, 500), afterSequenceParam(r))
			if err != nil {
				writeError(w, http.StatusInternalServerError, "get journals: %v", err)
				return
			}
			writeJSON(w, map[string]interface{}{"journals": entries})
		})
	if err != nil {
		return err
	}

	err = mux.HandlePath("GET", "/v1/auctions/{auction_id}/summary",
		func(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
			summary, err := qs.GetAuctionSummary(r.Context(), pathParams["auction_id"], assetParam(r))
			if err != nil {
				writeError(w, http.StatusBadRequest, "get summary: %v", err)
				return
			}
			writeJSON(w, summary)
		})
	if err != nil {
		return err
	}

	err = mux.HandlePath("GET", "/v1/auctions/{auction_id}/bids",
		func(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
			history, err := qs.GetBidHistory(r.Context(), pathParams["auction_id"],
				pageSizeParam(r, 50, 100), afterSequenceParam(r))
			if err != nil {
				writeError(w, http.StatusInternalServerError, "get bid history: %v", err)
				return
			}
			writeJSON(w, map[string]interface{}{"bids": history})
		})
	if err != nil {
		return err
	}

	return mux.HandlePath("GET", "/v1/protocol/fees",
		func(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
			asset := assetParam(r)
			balance, display, err := qs.GetProtocolFees(r.Context(), asset)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "get fees: %v", err)
				return
			}
			writeJSON(w, map[string]interface{}{
				"asset":           asset,
				"balance":         balance,
				"balance_display": display,
			})
		})
}

// ============================================================================
// Admin routes
// ============================================================================

func (s *GRPCServer) registerAdminRoutes(mux *runtime.ServeMux) error {
	err := mux.HandlePath("GET", "/v1/admin/eventlog",
		func(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
			latestSeq, err := s.deps.SnapshotMgr.GetLatestSequence(r.Context())
			if err != nil {
				writeError(w, http.StatusInternalServerError, "get latest sequence: %v", err)
				return
			}
			writeJSON(w, map[string]interface{}{
				"last_sequence": latestSeq,
				"uptime_secs":   int64(time.Since(s.deps.StartTime).Seconds()),
			})
		})
	if err != nil {
		return err
	}

	err = mux.HandlePath("POST", "/v1/admin/integrity/verify",
		func(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
			report, err := s.deps.QueryService.VerifyIntegrity(r.Context())
			if err != nil {
				writeError(w, http.StatusInternalServerError, "verify integrity: %v", err)
				return
			}
			writeJSON(w, report)
		})
	if err != nil {
		return err
	}

	err = mux.HandlePath("POST", "/v1/admin/projections/rebuild",
		func(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
			if err := projection.RebuildProjections(r.Context(), s.deps.DB); err != nil {
				writeError(w, http.StatusInternalServerError, "rebuild failed: %v", err)
				return
			}
			writeJSON(w, map[string]interface{}{"started": true, "task_id": "rebuild-sync"})
		})
	if err != nil {
		return err
	}

	return s.registerInjectRoutes(mux)
}

// registerInjectRoutes exposes the manual event-injection surface. These
// bypass NATS and feed the core's event channel directly.
func (s *GRPCServer) registerInjectRoutes(mux *runtime.ServeMux) error {
	svc := s.deps.IngestService

	err := mux.HandlePath("POST", "/v1/admin/auctions/{auction_id}/end",
		func(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
			var body struct {
				Authority string `json:"authority"`
			}
			if !decodeBody(w, r, &body) {
				return
			}
			authority, err := uuid.Parse(body.Authority)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid authority: %v", err)
				return
			}

			if err := svc.InjectAuctionEnd(r.Context(), authority, pathParams["auction_id"]); err != nil {
				writeError(w, http.StatusInternalServerError, "inject auction end: %v", err)
				return
			}
			writeJSON(w, map[string]interface{}{"accepted": true})
		})
	if err != nil {
		return err
	}

	err = mux.HandlePath("POST", "/v1/admin/store",
		func(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
			var body struct {
				Authority string `json:"authority"`
				Public    bool   `json:"public"`
			}
			if !decodeBody(w, r, &body) {
				return
			}
			authority, err := uuid.Parse(body.Authority)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid authority: %v", err)
				return
			}

			if err := svc.InjectStoreSet(r.Context(), authority, body.Public); err != nil {
				writeError(w, http.StatusInternalServerError, "inject store set: %v", err)
				return
			}
			writeJSON(w, map[string]interface{}{"accepted": true})
		})
	if err != nil {
		return err
	}

	err = mux.HandlePath("POST", "/v1/admin/whitelist",
		func(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
			var body struct {
				Authority string `json:"authority"`
				Creator   string `json:"creator"`
				Activated bool   `json:"activated"`
			}
			if !decodeBody(w, r, &body) {
				return
			}
			authority, err := uuid.Parse(body.Authority)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid authority: %v", err)
				return
			}
			creator, err := uuid.Parse(body.Creator)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid creator: %v", err)
				return
			}

			if err := svc.InjectWhitelistSet(r.Context(), authority, creator, body.Activated); err != nil {
				writeError(w, http.StatusInternalServerError, "inject whitelist set: %v", err)
				return
			}
			writeJSON(w, map[string]interface{}{"accepted": true})
		})
	if err != nil {
		return err
	}

	err = mux.HandlePath("POST", "/v1/admin/vault-pools",
		func(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
			var body struct {
				Authority string `json:"authority"`
				Vault     string `json:"vault"`
				PoolIndex uint8  `json:"pool_index"`
				Metadata  string `json:"metadata"`
				Amount    int64  `json:"amount"`
			}
			if !decodeBody(w, r, &body) {
				return
			}
			authority, err := uuid.Parse(body.Authority)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid authority: %v", err)
				return
			}
			vaultID, err := uuid.Parse(body.Vault)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid vault: %v", err)
				return
			}
			metadataID, err := uuid.Parse(body.Metadata)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid metadata: %v", err)
				return
			}

			if err := svc.InjectVaultPoolAdd(r.Context(), authority, vaultID, metadataID, body.PoolIndex, body.Amount); err != nil {
				writeError(w, http.StatusBadRequest, "inject vault pool add: %v", err)
				return
			}
			writeJSON(w, map[string]interface{}{"accepted": true})
		})
	if err != nil {
		return err
	}

	return mux.HandlePath("POST", "/v1/admin/metadata",
		func(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
			var body struct {
				Authority string `json:"authority"`
				Metadata  string `json:"metadata"`
				Creator   string `json:"creator"`
				Name      string `json:"name"`
				MaxSupply *int64 `json:"max_supply"`
			}
			if !decodeBody(w, r, &body) {
				return
			}
			authority, err := uuid.Parse(body.Authority)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid authority: %v", err)
				return
			}
			metadataID, err := uuid.Parse(body.Metadata)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid metadata: %v", err)
				return
			}
			creator, err := uuid.Parse(body.Creator)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid creator: %v", err)
				return
			}

			if err := svc.InjectMetadataRegister(r.Context(), authority, metadataID, creator, body.Name, body.MaxSupply); err != nil {
				writeError(w, http.StatusInternalServerError, "inject metadata register: %v", err)
				return
			}
			writeJSON(w, map[string]interface{}{"accepted": true})
		})
}

// ============================================================================
// Helpers
// ============================================================================

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, format string, args ...interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{
		"error": fmt.Sprintf(format, args...),
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "decode body: %v", err)
		return false
	}
	return true
}

func assetParam(r *http.Request) string {
	if asset := r.URL.Query().Get("asset"); asset != "" {
		return asset
	}
	return "USDC"
}

func pageSizeParam(r *http.Request, def, max int) int {
	raw := r.URL.Query().Get("page_size")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 || n > max {
		return def
	}
	return n
}

func afterSequenceParam(r *http.Request) *int64 {
	raw := r.URL.Query().Get("from_sequence")
	if raw == "" {
		return nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return nil
	}
	return &n
}
