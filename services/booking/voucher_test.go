package booking

import (
	"context"
	"testing"
	"time"

	"horizon/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func voucherBooking() *models.Booking {
	return &models.Booking{
		ID:            "HR-BT-LZ3K9QX2-7A4FQ",
		UserID:        "user-1",
		Type:          models.BookingTypeTour,
		ItemID:        "tour-serengeti-5d",
		ItemTitle:     "Serengeti Classic Safari",
		CustomerName:  "Asha Mwangi",
		CustomerEmail: "asha@example.com",
		CustomerPhone: "+254700000001",
		StartDate:     "2026-09-14",
		EndDate:       "2026-09-19",
		Participants:  2,
		ParticipantList: []models.Participant{
			{Name: "Asha Mwangi", Age: 34},
			{Name: "Jabari Mwangi", Age: 36, IDNumber: "A1234567"},
		},
		EmergencyContact: models.EmergencyContact{Name: "Nia Mwangi", Phone: "+254700000002"},
		PaymentID:        "pay_Nf29xkQ8XaY1",
		TotalAmount:      1840.50,
		Currency:         "INR",
		PaymentStatus:    "paid",
		Status:           models.BookingStatusConfirmed,
		CreatedAt:        time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}
}

func TestRenderVoucherProducesPDF(t *testing.T) {
	data, err := RenderVoucher(voucherBooking())
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestRenderVoucherHandlesLargeParties(t *testing.T) {
	b := voucherBooking()
	b.ParticipantList = nil
	for i := 0; i < 60; i++ {
		b.ParticipantList = append(b.ParticipantList, models.Participant{
			Name: "Traveller", Age: 20 + i%50,
		})
	}
	b.Participants = len(b.ParticipantList)

	data, err := RenderVoucher(b)
	require.NoError(t, err)
	assert.Greater(t, len(data), 1000)
}

type fakeStorage struct {
	uploaded []byte
	folder   string
	publicID string
}

func (s *fakeStorage) UploadBytes(ctx context.Context, data []byte, folder, publicID string) (string, error) {
	s.uploaded = data
	s.folder = folder
	s.publicID = publicID
	return "https://cdn.example.com/" + folder + "/" + publicID + ".pdf", nil
}

func TestGenerateAndAttachWritesVoucherURL(t *testing.T) {
	repo := newFakeBookingRepo()
	b := voucherBooking()
	require.NoError(t, repo.CommitBooking(context.Background(), b))

	st := &fakeStorage{}
	svc := &DefaultVoucherService{Storage: st, Setter: repo, Logger: testLogger()}

	url, err := svc.GenerateAndAttach(context.Background(), b)
	require.NoError(t, err)
	assert.Contains(t, url, "voucher-"+b.ID)
	assert.Equal(t, url, b.VoucherURL)
	assert.NotEmpty(t, st.uploaded)

	stored, err := repo.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, url, stored.VoucherURL)
}
