package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"

	"github.com/RaghavSood/bridgeswap/db"
	"github.com/RaghavSood/bridgeswap/metrics"
	"github.com/RaghavSood/bridgeswap/swaps"
)

var (
	errStillPending     = errors.New("settlement pending")
	errSettlementFailed = errors.New("settlement failed")
)

// Submit executes the selected route and waits for it to settle. On success the
// transaction is recorded in history; a history failure is logged and does not
// fail the submission.
func (s *Session) Submit(ctx context.Context) (db.Transaction, error) {
	var (
		route    swaps.Route
		sender   string
		receiver string
		err      error
	)
	s.update(func() {
		if s.submission == SubmissionPending {
			err = fmt.Errorf("%w: submission already pending", ErrNotReady)
			return
		}
		if reason := s.blockerLocked(); reason != "" {
			err = fmt.Errorf("%w: %s", ErrNotReady, reason)
			return
		}
		route = s.routes[s.selected]
		sender = s.account.Address
		receiver = s.receiver
		s.submission = SubmissionPending
		s.txHash = ""
		s.lastTx = nil
		s.submitErr = nil
	})
	if err != nil {
		return db.Transaction{}, err
	}

	log := s.logger.With(zap.String("bridge", route.Bridge.Name), zap.String("receiver", receiver))
	log.Info("submitting swap", zap.String("amount", route.FromAmount.String()), zap.Stringer("from", route.From), zap.Stringer("to", route.To))

	res, err := s.exec.Execute(ctx, route, sender, receiver)
	if err != nil {
		return db.Transaction{}, s.failSubmission(route, fmt.Errorf("executing swap: %w", err))
	}
	s.update(func() {
		s.txHash = res.TxHash
	})
	log.Info("swap broadcast", zap.String("tx", res.TxHash))

	if err := s.waitForSettlement(ctx, res.TxHash); err != nil {
		return db.Transaction{}, s.failSubmission(route, err)
	}

	tx := db.Transaction{
		TxHash:     res.TxHash,
		FromSymbol: route.From.Symbol,
		FromChain:  route.From.Chain.ID,
		ToSymbol:   route.To.Symbol,
		ToChain:    route.To.Chain.ID,
		FromAmount: route.FromAmount.String(),
		ToAmount:   route.ToAmount,
		Sender:     sender,
		Receiver:   receiver,
		Bridge:     route.Bridge.Name,
		ServiceFee: route.ServiceFeeDisplay(),
		GasFee:     route.GasFeeDisplay(),
		Status:     string(SubmissionSuccess),
		CreatedAt:  time.Now(),
	}
	if s.history != nil {
		if err := s.history.SaveTransaction(context.WithoutCancel(ctx), tx); err != nil {
			log.Warn("failed to save transaction to history", zap.String("tx", tx.TxHash), zap.Error(err))
		}
	}

	s.update(func() {
		s.submission = SubmissionSuccess
		s.lastTx = &tx
	})
	metrics.Submissions.WithLabelValues(route.Bridge.Name, string(SubmissionSuccess)).Inc()
	log.Info("swap settled", zap.String("tx", tx.TxHash))
	return tx, nil
}

func (s *Session) waitForSettlement(ctx context.Context, txHash string) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.cfg.PollInterval
	b.MaxInterval = 10 * s.cfg.PollInterval

	opts := []backoff.RetryOption{backoff.WithBackOff(b)}
	if s.cfg.SettlementTimeout > 0 {
		opts = append(opts, backoff.WithMaxElapsedTime(s.cfg.SettlementTimeout))
	}

	_, err := backoff.Retry(ctx, func() (swaps.Status, error) {
		status, err := s.exec.CheckStatus(ctx, txHash)
		if status == swaps.StatusFailed {
			if err == nil {
				err = errSettlementFailed
			}
			return status, backoff.Permanent(err)
		}
		if err != nil {
			return status, err
		}
		if status != swaps.StatusCompleted {
			return status, errStillPending
		}
		return status, nil
	}, opts...)
	if err != nil {
		return fmt.Errorf("waiting for %s: %w", txHash, err)
	}
	return nil
}

func (s *Session) failSubmission(route swaps.Route, err error) error {
	s.update(func() {
		s.submission = SubmissionError
		s.submitErr = err
	})
	metrics.Submissions.WithLabelValues(route.Bridge.Name, string(SubmissionError)).Inc()
	s.logger.Warn("swap failed", zap.String("bridge", route.Bridge.Name), zap.Error(err))
	return err
}

// ResetSubmission returns a finished submission to idle.
func (s *Session) ResetSubmission() {
	s.update(func() {
		if s.submission == SubmissionPending {
			return
		}
		s.submission = SubmissionIdle
		s.txHash = ""
		s.lastTx = nil
		s.submitErr = nil
	})
}
