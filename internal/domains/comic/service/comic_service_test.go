package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comicvault-backend/internal/domains/comic/model"
	"comicvault-backend/internal/shared/upc"
)

type stubBarcodeGateway struct {
	result *model.ScanResult
	found  bool
	calls  int
}

func (s *stubBarcodeGateway) Scan(_ context.Context, _ []byte, _ string) (*model.ScanResult, bool) {
	s.calls++
	return s.result, s.found
}

type stubMetadataGateway struct {
	issue   *model.MetronIssue
	err     error
	calls   int
	lastUPC string
}

func (s *stubMetadataGateway) SearchByUPC(_ context.Context, code string) (*model.MetronIssue, error) {
	s.calls++
	s.lastUPC = code
	if s.err != nil {
		return nil, s.err
	}
	return s.issue, nil
}

func sagaIssue() *model.MetronIssue {
	return &model.MetronIssue{
		Series: model.MetronSeries{Name: "Saga", Volume: "1", YearBegan: "2012"},
		Number: "54",
		Issue:  "Saga #54",
		Image:  "https://img.example/saga-54.jpg",
	}
}

func TestSearchByUPC_Success(t *testing.T) {
	metadata := &stubMetadataGateway{issue: sagaIssue()}
	svc := NewService(&stubBarcodeGateway{}, metadata, nil)

	comic, err := svc.SearchByUPC(context.Background(), " 036785500167 00111 ")
	require.NoError(t, err)

	// Whitespace stripped trước khi gọi provider
	assert.Equal(t, "03678550016700111", metadata.lastUPC)
	assert.Equal(t, "03678550016700111", comic.UPC)
	assert.Equal(t, "Saga", comic.SeriesName)
	assert.Equal(t, "1", comic.VariantNumber)
	assert.Equal(t, "1", comic.Printing)
}

func TestSearchByUPC_InvalidInputShortCircuits(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"empty", "", upc.ErrMissingInput},
		{"whitespace only", "   ", upc.ErrMissingInput},
		{"non-digit", "12a45678901234567", upc.ErrNonDigitCharacters},
		{"too short", "036785500167", upc.ErrWrongLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metadata := &stubMetadataGateway{issue: sagaIssue()}
			svc := NewService(&stubBarcodeGateway{}, metadata, nil)

			_, err := svc.SearchByUPC(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
			// Validation fail thì không có provider call
			assert.Zero(t, metadata.calls)
		})
	}
}

func TestSearchByUPC_ProviderErrorPassthrough(t *testing.T) {
	metadata := &stubMetadataGateway{err: model.ErrIssueNotFound}
	svc := NewService(&stubBarcodeGateway{}, metadata, nil)

	_, err := svc.SearchByUPC(context.Background(), "03678550016700111")
	assert.ErrorIs(t, err, model.ErrIssueNotFound)
}

func TestScanImage_Success(t *testing.T) {
	barcode := &stubBarcodeGateway{
		result: &model.ScanResult{UPC: "036785500167", Extension: "00121"},
		found:  true,
	}
	metadata := &stubMetadataGateway{issue: sagaIssue()}
	svc := NewService(barcode, metadata, nil)

	comic, err := svc.ScanImage(context.Background(), []byte("jpeg"), "cover.jpg")
	require.NoError(t, err)

	// Scanner extension thắng default
	assert.Equal(t, "03678550016700121", metadata.lastUPC)
	assert.Equal(t, "03678550016700121", comic.UPC)
	assert.Equal(t, "2", comic.VariantNumber)
	assert.Equal(t, "1", comic.Printing)
}

func TestScanImage_DefaultExtension(t *testing.T) {
	barcode := &stubBarcodeGateway{
		result: &model.ScanResult{UPC: "036785500167"},
		found:  true,
	}
	metadata := &stubMetadataGateway{issue: sagaIssue()}
	svc := NewService(barcode, metadata, nil)

	_, err := svc.ScanImage(context.Background(), []byte("jpeg"), "cover.jpg")
	require.NoError(t, err)
	assert.Equal(t, "03678550016700111", metadata.lastUPC)
}

func TestScanImage_NoBarcodeDetected(t *testing.T) {
	barcode := &stubBarcodeGateway{found: false}
	metadata := &stubMetadataGateway{issue: sagaIssue()}
	svc := NewService(barcode, metadata, nil)

	_, err := svc.ScanImage(context.Background(), []byte("jpeg"), "cover.jpg")
	assert.ErrorIs(t, err, model.ErrBarcodeNotFound)
	assert.Zero(t, metadata.calls)
}

func TestScanImage_EmptyImage(t *testing.T) {
	barcode := &stubBarcodeGateway{found: true, result: &model.ScanResult{UPC: "036785500167"}}
	svc := NewService(barcode, &stubMetadataGateway{}, nil)

	_, err := svc.ScanImage(context.Background(), nil, "cover.jpg")
	assert.ErrorIs(t, err, model.ErrMissingImage)
	assert.Zero(t, barcode.calls)
}
