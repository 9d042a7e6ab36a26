package grpc

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/bibbank/bib/services/realcare-service/internal/application/dto"
	"github.com/bibbank/bib/services/realcare-service/internal/application/usecase"
	"github.com/bibbank/bib/services/realcare-service/internal/domain/event"
	"github.com/bibbank/bib/services/realcare-service/internal/domain/model"
	"github.com/bibbank/bib/services/realcare-service/internal/infrastructure/regulation"
	"github.com/bibbank/bib/services/realcare-service/pkg/tlsutil"
)

// --- Mock implementations ---

type mockEventPublisher struct {
	publishErr error
	published  int
}

func (m *mockEventPublisher) Publish(_ context.Context, evts ...event.DomainEvent) error {
	m.published += len(evts)
	return m.publishErr
}

type nopMetrics struct{}

func (nopMetrics) RecordAssessment(context.Context, model.RealityScoreResult) {}
func (nopMetrics) RecordComparison(context.Context, model.ScenarioComparison) {}
func (nopMetrics) RecordTaxCalculation(context.Context, model.TaxResult)      {}

// --- Helpers ---

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func buildTestHandler(publisher *mockEventPublisher) *RealCareHandler {
	services := usecase.NewServices(usecase.Dependencies{
		Registry:         regulation.MustEmbedded(),
		Publisher:        publisher,
		Metrics:          nopMetrics{},
		Logger:           discardLogger(),
		BatchConcurrency: 4,
	})
	return NewRealCareHandler(services, discardLogger())
}

func goldenRequest() *AssessFeasibilityRequest {
	return &AssessFeasibilityRequest{
		PropertyPrice: decimal.NewFromInt(900_000_000),
		Financials: dto.FinancialsRequest{
			AnnualIncome: decimal.NewFromInt(80_000_000),
			TotalAssets:  decimal.NewFromInt(300_000_000),
			CashAssets:   decimal.NewFromInt(300_000_000),
			IsFirstHome:  true,
		},
		RegionCode:    "11680",
		LoanTermYears: 30,
		AnnualRatePct: 4.5,
	}
}

// --- Tests ---

func TestAssessFeasibility(t *testing.T) {
	publisher := &mockEventPublisher{}
	h := buildTestHandler(publisher)

	resp, err := h.AssessFeasibility(context.Background(), goldenRequest())
	require.NoError(t, err)

	assert.Equal(t, 60, resp.Score)
	assert.Equal(t, "C", resp.Grade)
	assert.Equal(t, "CASH", resp.Analysis.LimitingFactor)
	assert.True(t, resp.Analysis.GapAmount.Equal(decimal.NewFromInt(150_000_000)))
	assert.Equal(t, "11680", resp.Region.Code)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, 1, publisher.published)
}

func TestAssessFeasibility_NilRequest(t *testing.T) {
	h := buildTestHandler(&mockEventPublisher{})

	_, err := h.AssessFeasibility(context.Background(), nil)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestAssessFeasibility_InvalidRequest(t *testing.T) {
	h := buildTestHandler(&mockEventPublisher{})

	req := goldenRequest()
	req.LoanTermYears = 0
	_, err := h.AssessFeasibility(context.Background(), req)

	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.InvalidArgument, st.Code())
	assert.Contains(t, st.Message(), "loan_term_years")
}

func TestAssessFeasibility_PublishFailureIsInternal(t *testing.T) {
	h := buildTestHandler(&mockEventPublisher{publishErr: errors.New("broker down")})

	_, err := h.AssessFeasibility(context.Background(), goldenRequest())

	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.Internal, st.Code())
	assert.Equal(t, "internal error", st.Message(), "internal details are not leaked")
}

func TestGetRegion_UnknownCodeFallsBack(t *testing.T) {
	h := buildTestHandler(&mockEventPublisher{})

	resp, err := h.GetRegion(context.Background(), &GetRegionRequest{Code: "00000"})
	require.NoError(t, err)
	assert.True(t, resp.IsDefault)
	assert.Equal(t, 70.0, resp.LTVFirstHomePct)
}

func TestListRegions(t *testing.T) {
	h := buildTestHandler(&mockEventPublisher{})

	resp, err := h.ListRegions(context.Background(), &ListRegionsRequest{})
	require.NoError(t, err)
	assert.Equal(t, "2023.1", resp.Version)
	assert.Len(t, resp.Regions, 9)
	assert.True(t, resp.Default.IsDefault)
}

func TestCompareScenarios_InvalidWait(t *testing.T) {
	h := buildTestHandler(&mockEventPublisher{})

	_, err := h.CompareScenarios(context.Background(), &CompareScenariosRequest{
		Base:      *goldenRequest(),
		WaitYears: 0,
	})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestBatchCompareScenarios(t *testing.T) {
	publisher := &mockEventPublisher{}
	h := buildTestHandler(publisher)

	item := CompareScenariosRequest{Base: *goldenRequest(), WaitYears: 3}
	resp, err := h.BatchCompareScenarios(context.Background(), &BatchCompareScenariosRequest{
		Items: []CompareScenariosRequest{item, item, item},
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 3)
	assert.Equal(t, resp.Results[0].ScoreDelta, resp.Results[2].ScoreDelta)
	assert.Equal(t, 3, publisher.published)
}

func TestGetRepaymentSchedule(t *testing.T) {
	h := buildTestHandler(&mockEventPublisher{})

	resp, err := h.GetRepaymentSchedule(context.Background(), &GetRepaymentScheduleRequest{
		Principal:     decimal.NewFromInt(12_000_000),
		AnnualRatePct: 0,
		TermMonths:    12,
	})
	require.NoError(t, err)
	require.Len(t, resp.Entries, 12)
	assert.True(t, resp.TotalPaid.Equal(decimal.NewFromInt(12_000_000)))
	assert.True(t, resp.TotalInterest.IsZero())
}

func serveBufconn(t *testing.T, opts ServerOptions) *bufconn.Listener {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv, err := NewServer(buildTestHandler(&mockEventPublisher{}), discardLogger(), opts)
	require.NoError(t, err)
	go func() { _ = srv.ServeListener(lis) }()
	t.Cleanup(srv.GracefulStop)
	return lis
}

func dialBufconn(t *testing.T, lis *bufconn.Listener, creds credentials.TransportCredentials) *grpclib.ClientConn {
	t.Helper()
	conn, err := grpclib.NewClient("passthrough:///bufnet",
		grpclib.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpclib.WithTransportCredentials(creds),
		grpclib.WithDefaultCallOptions(grpclib.CallContentSubtype(codecName)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestServerOverJSONCodec(t *testing.T) {
	lis := serveBufconn(t, ServerOptions{ServiceName: "realcare-service"})
	conn := dialBufconn(t, lis, insecure.NewCredentials())

	var resp AssessFeasibilityResponse
	err := conn.Invoke(context.Background(), "/"+serviceName+"/AssessFeasibility", goldenRequest(), &resp)
	require.NoError(t, err)
	assert.Equal(t, 60, resp.Score)
	assert.True(t, resp.Analysis.MaxLoanAmount.Equal(decimal.NewFromInt(450_000_000)))

	bad := goldenRequest()
	bad.PropertyPrice = decimal.Zero
	err = conn.Invoke(context.Background(), "/"+serviceName+"/AssessFeasibility", bad, &resp)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestServerWithTLS(t *testing.T) {
	bundle, err := tlsutil.GenerateSelfSigned([]string{"bufnet"}, t.TempDir(), time.Hour)
	require.NoError(t, err)

	lis := serveBufconn(t, ServerOptions{
		ServiceName: "realcare-service",
		TLSCertFile: bundle.CertFile,
		TLSKeyFile:  bundle.KeyFile,
	})

	t.Run("trusted client", func(t *testing.T) {
		creds, err := tlsutil.ClientTLSConfig(bundle.CAFile)
		require.NoError(t, err)
		conn := dialBufconn(t, lis, creds)

		var resp GetRegionResponse
		err = conn.Invoke(context.Background(), "/"+serviceName+"/GetRegion", &GetRegionRequest{Code: "11680"}, &resp)
		require.NoError(t, err)
		assert.True(t, resp.IsSpeculative)
	})

	t.Run("plaintext client is refused", func(t *testing.T) {
		conn := dialBufconn(t, lis, insecure.NewCredentials())

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		var resp GetRegionResponse
		err := conn.Invoke(ctx, "/"+serviceName+"/GetRegion", &GetRegionRequest{Code: "11680"}, &resp)
		assert.Error(t, err)
	})
}

func TestNewServer_BadTLSFiles(t *testing.T) {
	_, err := NewServer(buildTestHandler(&mockEventPublisher{}), discardLogger(), ServerOptions{
		ServiceName: "realcare-service",
		TLSCertFile: filepath.Join(t.TempDir(), "missing.pem"),
		TLSKeyFile:  filepath.Join(t.TempDir(), "missing-key.pem"),
	})
	assert.ErrorContains(t, err, "grpc server credentials")
}
