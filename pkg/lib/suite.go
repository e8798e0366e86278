package lib

import "context"

// Keywords returns the sandbox keywords of an execution profile, empty uses the
// default profile. It returns nil when the profile has no keywords.
func (c *Client) Keywords(ctx context.Context, executionProfile string) (map[string]string, error) {
	kws, err := c.manager.Keywords(ctx, executionProfile)
	if err != nil {
		return nil, mapError(err)
	}
	return kws, nil
}

// SetKeywords sets string keywords on a sandbox execution profile.
func (c *Client) SetKeywords(ctx context.Context, executionProfile string, keywords map[string]string) error {
	return mapError(c.manager.SetKeywords(ctx, executionProfile, keywords))
}

// RunSuite starts a test suite on the sandbox.
func (c *Client) RunSuite(ctx context.Context, suite string) error {
	return mapError(c.manager.RunSuite(ctx, suite))
}

// WaitForSuite blocks until the suite stops or aborts and returns its final status.
func (c *Client) WaitForSuite(ctx context.Context, suite string) (SuiteStatus, error) {
	st, err := c.manager.WaitForSuite(ctx, suite)
	if err != nil {
		return "", mapError(err)
	}
	return SuiteStatus(st), nil
}

// Results returns the latest sandbox test run result.
func (c *Client) Results(ctx context.Context) (*TestResult, error) {
	res, verdict, err := c.manager.Results(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	r := fromInternalTestResult(*res, verdict)
	return &r, nil
}
