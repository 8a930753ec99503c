package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"fanlens/internal/email"
)

// DigestService arma y envia el resumen semanal de engagement de un target.
type DigestService struct {
	signals *SignalService
	sender  email.Sender
	logger  *zap.Logger
}

func NewDigestService(signals *SignalService, sender email.Sender, logger *zap.Logger) *DigestService {
	return &DigestService{signals: signals, sender: sender, logger: logger}
}

// SendTargetDigest agrega la actividad de la ultima semana y la envia por
// correo al creador.
func (s *DigestService) SendTargetDigest(ctx context.Context, targetID, toEmail string) error {
	stats, err := s.signals.TargetDashboard(ctx, targetID, 7*24*time.Hour)
	if err != nil {
		return fmt.Errorf("build dashboard: %w", err)
	}

	subject := fmt.Sprintf("Resumen de engagement: %d senales esta semana", stats.TotalSignals)
	body := renderDigest(stats)

	if err := s.sender.Send(ctx, toEmail, subject, body); err != nil {
		return fmt.Errorf("send digest: %w", err)
	}

	s.logger.Info("digest sent",
		zap.String("target_id", targetID),
		zap.Int("total_signals", stats.TotalSignals))
	return nil
}

func renderDigest(stats DashboardStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Actividad de los ultimos %d dias\n\n", int(stats.Window.Hours()/24))
	fmt.Fprintf(&b, "Senales totales: %d\n", stats.TotalSignals)
	fmt.Fprintf(&b, "Fans activos: %d\n\n", stats.UniqueSubjects)

	if len(stats.CountsByKind) > 0 {
		b.WriteString("Por tipo de senal:\n")
		kinds := make([]string, 0, len(stats.CountsByKind))
		for kind := range stats.CountsByKind {
			kinds = append(kinds, kind)
		}
		sort.Strings(kinds)
		for _, kind := range kinds {
			fmt.Fprintf(&b, "  %s: %d\n", kind, stats.CountsByKind[kind])
		}
		b.WriteString("\n")
	}

	if len(stats.TopSubjects) > 0 {
		b.WriteString("Fans mas activos:\n")
		for i, subj := range stats.TopSubjects {
			fmt.Fprintf(&b, "  %d. %s (%d senales)\n", i+1, subj.SubjectID, subj.SignalCount)
		}
	}

	return b.String()
}
