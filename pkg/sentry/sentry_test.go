package sentry

import (
	"errors"
	"testing"

	sentrygo "github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestSentry_Chaining(t *testing.T) {
	e := echo.New()
	ctx := e.NewContext(nil, nil)
	err := errors.New("boom")
	extras := map[string]interface{}{"tconst": "tt0000001"}
	tags := map[string]string{"resource": "basics"}
	values := map[string]sentrygo.Context{"request": {}}

	s := new(Sentry).
		WithContext(ctx).
		WithError(err).
		WithMessage("msg").
		WithLevel(sentrygo.LevelWarning).
		WithExtras(extras).
		WithTags(tags).
		WithContextValues(values)

	assert.Equal(t, ctx, s.context)
	assert.Equal(t, err, s.error)
	assert.Equal(t, "msg", s.message)
	assert.Equal(t, sentrygo.LevelWarning, s.level)
	assert.Equal(t, extras, s.extras)
	assert.Equal(t, tags, s.tags)
	assert.Equal(t, values, s.contextValues)
}

func TestSentry_Constructors(t *testing.T) {
	ctx := echo.New().NewContext(nil, nil)

	assert.Equal(t, ctx, WithContext(ctx).context)
	assert.Equal(t, map[string]string{"a": "b"}, WithTags(map[string]string{"a": "b"}).tags)
	assert.Equal(t, map[string]interface{}{"a": 1}, WithExtras(map[string]interface{}{"a": 1}).extras)
	assert.NotNil(t, WithContextValues(map[string]sentrygo.Context{}).contextValues)
}

func TestSentry_DisabledIsNoop(t *testing.T) {
	tests := []struct {
		name   string
		appEnv string
		dsn    string
	}{
		{name: "local environment", appEnv: "local", dsn: "https://public@sentry.example.com/1"},
		{name: "empty dsn", appEnv: "production", dsn: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_ENV", tt.appEnv)
			t.Setenv("SENTRY_DSN", tt.dsn)
			FlushTime = 0

			assert.False(t, enabled())
			assert.NotPanics(t, func() {
				Debugf("debug %d", 1)
				Infof("info %d", 1)
				Warningf("warning %d", 1)
				Errorf("error %d", 1)
				Fatal(errors.New("fatal"))
			})
		})
	}
}

func TestSentry_SendsWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SENTRY_DSN", "https://public@sentry.example.com/1")
	assert.NoError(t, sentrygo.Init(sentrygo.ClientOptions{Dsn: "https://public@sentry.example.com/1"}))
	defer sentrygo.Flush(0)

	assert.True(t, enabled())
	assert.NotPanics(t, func() {
		new(Sentry).WithTags(map[string]string{"env": "test"}).Error(errors.New("test error"))
		new(Sentry).WithExtras(map[string]interface{}{"k": "v"}).Info("test message")
	})
}

func TestSentry_GetHub(t *testing.T) {
	t.Run("falls back to current hub", func(t *testing.T) {
		assert.Equal(t, sentrygo.CurrentHub(), new(Sentry).getHub())
	})

	t.Run("uses hub stored on echo context", func(t *testing.T) {
		ctx := echo.New().NewContext(nil, nil)
		hub := sentrygo.CurrentHub().Clone()
		ctx.Set("sentry", hub)

		assert.Same(t, hub, WithContext(ctx).getHub())
	})
}

func TestSentry_ConfigScope(t *testing.T) {
	s := new(Sentry).
		WithLevel(sentrygo.LevelError).
		WithExtras(map[string]interface{}{"key": "value"}).
		WithTags(map[string]string{"env": "test"}).
		WithContextValues(map[string]sentrygo.Context{"custom": {}})

	scope := sentrygo.NewScope()
	assert.NotPanics(t, func() { s.configScope(scope) })
}
