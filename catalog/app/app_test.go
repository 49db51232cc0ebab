package app

import (
	"bytes"
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Astemirdum/library-catalog/catalog/config"
	"github.com/Astemirdum/library-catalog/pkg/circuit_breaker"
	"github.com/Astemirdum/library-catalog/pkg/logger"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	booksCSV = `id,title,author,genre,lastCheckoutDate,checkedOut
1,Treasure Island,Robert Louis Stevenson,Adventure,2023-08-01,true
2,Pride and Prejudice,Jane Austen,Classics,2023-09-10,false
`
	usersCSV = `id,fullName,checkedOutBooks
5,Jane Doe,{1}
6,John Smith
`
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		Storage: config.Storage{
			Driver:    "csv",
			BooksPath: filepath.Join(dir, "catalog.csv"),
			UsersPath: filepath.Join(dir, "user.csv"),
		},
		Report:        config.Report{Path: filepath.Join(dir, "report.txt")},
		Log:           logger.Log{LogLevel: zapcore.ErrorLevel},
		ReferenceDate: "2023-09-15",
	}
	require.NoError(t, os.WriteFile(cfg.Storage.BooksPath, []byte(booksCSV), 0o644))
	require.NoError(t, os.WriteFile(cfg.Storage.UsersPath, []byte(usersCSV), 0o644))
	return cfg
}

func TestReport(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t)

	var out bytes.Buffer
	require.NoError(t, Report(context.Background(), cfg, &out))

	written, err := os.ReadFile(cfg.Report.Path)
	require.NoError(t, err)
	require.Equal(t, out.String(), string(written))
	require.Contains(t, out.String(), "Treasure Island BY Robert Louis Stevenson")
	require.Contains(t, out.String(), "Jane Doe")
	require.Contains(t, out.String(), "$31.00")
}

func TestReport_BadReferenceDate(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t)
	cfg.ReferenceDate = "yesterday"
	require.Error(t, Report(context.Background(), cfg, &bytes.Buffer{}))
}

func TestNewRepository(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t)

	repo, closeRepo, err := NewRepository(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer closeRepo()
	books, err := repo.LoadBooks(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 2)

	cfg.Storage.Driver = "mongo"
	_, _, err = NewRepository(context.Background(), cfg, zap.NewNop())
	require.Error(t, err)
}

func TestRun_KafkaSetupErrorLeavesNoServer(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t)

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	_, port, err := net.SplitHostPort(l.Addr().String())
	require.NoError(t, err)
	require.NoError(t, l.Close())

	cfg.Server = config.HTTPServer{Host: "127.0.0.1", Port: port}
	cfg.Kafka.Addrs = []string{"127.0.0.1:1"}
	cfg.CircuitBreaker = circuit_breaker.Config{RecordLength: 1, Timeout: time.Second, Percentile: 1, RecoveryRequests: 1}

	require.Error(t, Run(cfg))

	l, err = net.Listen("tcp", net.JoinHostPort("127.0.0.1", port))
	require.NoError(t, err, "http server must not outlive a failed setup")
	require.NoError(t, l.Close())
}

func TestRun_BadStorageDriver(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t)
	cfg.Storage.Driver = "mongo"
	require.Error(t, Run(cfg))
}
