package analysis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/bryanwahyu/propsight-ai/internal/domain/analysis"
)

type fakeGenerator struct {
	reply  string
	usage  domain.Usage
	err    error
	prompt string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, domain.Usage, error) {
	f.prompt = prompt
	return f.reply, f.usage, f.err
}

func (f *fakeGenerator) Model() string { return "gpt-4o-mini" }

type fakeArchive struct {
	keys   []string
	bodies [][]byte
	err    error
}

func (f *fakeArchive) PutReply(_ context.Context, key string, body []byte) (string, error) {
	f.keys = append(f.keys, key)
	f.bodies = append(f.bodies, body)
	return "http://archive/" + key, f.err
}

type fixedClock struct {
	times []time.Time
}

func (c *fixedClock) Now() time.Time {
	t := c.times[0]
	if len(c.times) > 1 {
		c.times = c.times[1:]
	}
	return t
}

func validRequest() domain.Request {
	return domain.Request{
		"requestId": "req-42",
		"currency":  "ZAR",
		"propertyData": map[string]any{
			"price": 1000000.0, "deposit": 100000.0, "loanAmount": 900000.0,
			"interestRate": 11.0, "loanTermYears": 20.0,
		},
		"incomeData": map[string]any{
			"monthlyRent": 10000.0, "annualRentIncrease": 6.0, "vacancyMonths": 1.0,
		},
		"expenseData": map[string]any{
			"monthlyRates": 1000.0, "monthlyLevies": 1500.0, "monthlyInsurance": 400.0,
			"monthlyWaterElec": 900.0, "monthlyWifi": 700.0, "monthlySecurity": 300.0,
			"maintenancePercent": 5.0, "commissionPercent": 8.0, "cleaningPercent": 2.0,
			"annualExpenseIncrease": 7.0,
		},
	}
}

func newClock() *fixedClock {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &fixedClock{times: []time.Time{base, base.Add(1200 * time.Millisecond)}}
}

func TestAnalyzeSuccess(t *testing.T) {
	gen := &fakeGenerator{
		reply: `{"scorecard":{"overallScore":75,"verdict":"GOOD"}}`,
		usage: domain.Usage{Input: 900, Output: 400},
	}
	svc := &Service{Generator: gen, Clock: newClock()}

	env, err := svc.Analyze(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, env.Success)
	assert.Equal(t, "req-42", env.RequestID)
	require.NotNil(t, env.Metadata)
	assert.Equal(t, "gpt-4o-mini", env.Metadata.ModelUsed)
	assert.Equal(t, int64(1200), env.Metadata.ProcessingTimeMs)
	assert.Equal(t, domain.Usage{Input: 900, Output: 400}, env.Metadata.TokensUsed)

	obj := env.Analysis.(map[string]any)
	sc := obj["scorecard"].(map[string]any)
	assert.Equal(t, "GOOD", sc["verdict"])

	// the prompt that went out carries the request data
	assert.Contains(t, gen.prompt, "ZAR 1,000,000")
}

func TestAnalyzeMissingScorecardUsesFallback(t *testing.T) {
	gen := &fakeGenerator{reply: `{"summary":"looks fine"}`}
	svc := &Service{Generator: gen, Clock: newClock()}

	env, err := svc.Analyze(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, env.Success)
	result, ok := env.Analysis.(*domain.Result)
	require.True(t, ok)
	assert.Equal(t, 50, result.Scorecard.OverallScore)
	assert.Equal(t, domain.VerdictFair, result.Scorecard.Verdict)
}

func TestAnalyzeGarbageReplyUsesFallback(t *testing.T) {
	gen := &fakeGenerator{reply: "I cannot help with that."}
	svc := &Service{Generator: gen, Clock: newClock()}

	env, err := svc.Analyze(context.Background(), validRequest())
	require.NoError(t, err)
	assert.True(t, env.Success)

	result := env.Analysis.(*domain.Result)
	assert.Equal(t, domain.VerdictFair, result.Scorecard.Verdict)
}

func TestAnalyzeGeneratorError(t *testing.T) {
	gen := &fakeGenerator{err: fmt.Errorf("connection reset")}
	svc := &Service{Generator: gen, Clock: newClock()}

	env, err := svc.Analyze(context.Background(), validRequest())
	require.Error(t, err)

	assert.False(t, env.Success)
	assert.Equal(t, "req-42", env.RequestID)
	assert.Contains(t, env.Error, "connection reset")
	// even on hard failure the caller gets a schema-valid analysis
	result := env.Analysis.(*domain.Result)
	assert.Equal(t, 50, result.Scorecard.OverallScore)
}

func TestAnalyzePromptError(t *testing.T) {
	req := validRequest()
	delete(req, "currency")
	svc := &Service{Generator: &fakeGenerator{}, Clock: newClock()}

	env, err := svc.Analyze(context.Background(), req)
	require.Error(t, err)
	assert.False(t, env.Success)
	assert.NotNil(t, env.Analysis)
}

func TestAnalyzeArchivesRawReply(t *testing.T) {
	gen := &fakeGenerator{reply: `{"scorecard":{"overallScore":60}}`}
	arch := &fakeArchive{}
	svc := &Service{Generator: gen, Archive: arch, Clock: newClock()}

	_, err := svc.Analyze(context.Background(), validRequest())
	require.NoError(t, err)

	require.Len(t, arch.keys, 1)
	assert.Contains(t, arch.keys[0], "replies/req-42-")
	assert.Equal(t, gen.reply, string(arch.bodies[0]))
}

func TestAnalyzeArchiveFailureIsNonFatal(t *testing.T) {
	gen := &fakeGenerator{reply: `{"scorecard":{}}`}
	arch := &fakeArchive{err: fmt.Errorf("bucket gone")}
	svc := &Service{Generator: gen, Archive: arch, Clock: newClock()}

	env, err := svc.Analyze(context.Background(), validRequest())
	require.NoError(t, err)
	assert.True(t, env.Success)
}

func TestAnalyzeUnknownRequestID(t *testing.T) {
	req := validRequest()
	delete(req, "requestId")
	gen := &fakeGenerator{reply: `{"scorecard":{}}`}
	svc := &Service{Generator: gen, Clock: newClock()}

	env, err := svc.Analyze(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "unknown", env.RequestID)
}
