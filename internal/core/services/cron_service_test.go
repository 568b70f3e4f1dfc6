package services

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCronService_PurgeExpired(t *testing.T) {
	env := newTestEnv(OTPConfig{FixedCode: "1234"})
	ctx := context.Background()
	account := seedPreparer(t, env)

	_, _, err := env.sessionSvc.SignIn(ctx, account)
	require.NoError(t, err)
	_, err = env.signupSvc.Start(ctx, validIdentity)
	require.NoError(t, err)

	result, err := env.cronSvc.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, PurgeResult{}, result)

	env.clock.Advance(2 * time.Hour)
	result, err = env.cronSvc.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, PurgeResult{Sessions: 1, Signups: 1}, result)
	assert.Zero(t, env.signupSvc.Pending())

	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.ExpiredPurged.WithLabelValues("session")))
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.ExpiredPurged.WithLabelValues("signup")))
}

func TestCronService_StartStop(t *testing.T) {
	env := newTestEnv(DefaultOTPConfig)

	require.NoError(t, env.cronSvc.Start())
	env.cronSvc.Stop()
}

func TestCronService_BadSchedule(t *testing.T) {
	env := newTestEnv(DefaultOTPConfig)
	svc := NewCronService(env.sessionSvc, env.signupSvc, env.metrics, discardLogger(), "not a schedule")

	assert.Error(t, svc.Start())
}
