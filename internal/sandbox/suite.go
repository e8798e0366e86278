package sandbox

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/slok/tokactl/internal/conventions"
	"github.com/slok/tokactl/internal/model"
)

func (c *Controller) Keywords(ctx context.Context, executionProfile string) (map[string]string, error) {
	if err := c.checkSelected(); err != nil {
		return nil, err
	}
	if executionProfile == "" {
		executionProfile = model.DefaultExecutionProfile
	}

	set, err := c.api.GetKeywords(ctx, c.sandbox, executionProfile)
	if err != nil {
		return nil, fmt.Errorf("could not get sandbox %s keywords: %w", c.sandbox, err)
	}

	if set.Keywords == nil {
		c.logger.Warningf("Sandbox %s has no %s keywords: %s", c.sandbox, executionProfile, set.Message)
		return nil, nil
	}

	kws := make(map[string]string, len(set.Keywords))
	for _, kw := range set.Keywords {
		kws[kw.Name] = kw.Value
	}
	c.logger.Debugf("Sandbox %s %s keywords: %v", c.sandbox, executionProfile, kws)

	return kws, nil
}

func (c *Controller) SetKeywords(ctx context.Context, executionProfile string, keywords map[string]string) error {
	if err := c.checkSelected(); err != nil {
		return err
	}
	if len(keywords) == 0 {
		return fmt.Errorf("at least one keyword is required: %w", model.ErrNotValid)
	}
	if executionProfile == "" {
		executionProfile = model.DefaultExecutionProfile
	}

	kws := make([]model.Keyword, 0, len(keywords))
	for _, name := range slices.Sorted(maps.Keys(keywords)) {
		kws = append(kws, model.Keyword{
			Name:             name,
			Value:            keywords[name],
			DataType:         "String",
			ExecutionProfile: executionProfile,
		})
	}

	if err := c.api.SetKeywords(ctx, c.sandbox, kws); err != nil {
		return fmt.Errorf("could not set sandbox %s keywords: %w", c.sandbox, err)
	}
	c.logger.Infof("Set %d %s keywords on sandbox %s", len(kws), executionProfile, c.sandbox)

	return nil
}

func (c *Controller) RunSuite(ctx context.Context, suite string) error {
	if err := c.checkSelected(); err != nil {
		return err
	}

	sb := c.activeTopology()
	c.logger.Infof("Running suite %s on sandbox %s", suite, sb)

	status, err := c.api.RunSuite(ctx, sb, suite)
	if err != nil {
		return fmt.Errorf("could not run suite %s: %w", suite, err)
	}
	if status != conventions.SuiteStartedStatus {
		return fmt.Errorf("suite %s did not start, status %q: %w", suite, status, model.ErrNotValid)
	}

	return nil
}

// WaitForSuite polls the suite status until it has stopped or aborted.
func (c *Controller) WaitForSuite(ctx context.Context, suite string) (model.SuiteStatus, error) {
	if err := c.checkSelected(); err != nil {
		return "", err
	}

	sb := c.activeTopology()
	for {
		status, err := c.api.SuiteStatus(ctx, sb, suite)
		if err != nil {
			return "", fmt.Errorf("could not get suite %s status: %w", suite, err)
		}
		c.logger.Debugf("Suite %s status: %s", suite, status)

		if status.Finished() {
			return status, nil
		}

		if err := sleep(ctx, c.pollInterval); err != nil {
			return "", fmt.Errorf("stopped waiting for suite %s: %w", suite, err)
		}
	}
}

// Results returns the latest test run result and its verdict.
func (c *Controller) Results(ctx context.Context) (*model.TestResult, model.Verdict, error) {
	if err := c.checkSelected(); err != nil {
		return nil, "", err
	}

	sb := c.activeTopology()
	res, err := c.api.LatestResults(ctx, sb)
	if err != nil {
		return nil, "", fmt.Errorf("could not get sandbox %s results: %w", sb, err)
	}

	verdict := res.Verdict()
	if verdict == model.VerdictFailed {
		c.logger.Errorf("Sandbox %s test result: %s", sb, verdict)
	} else {
		c.logger.Infof("Sandbox %s test result: %s", sb, verdict)
	}

	return res, verdict, nil
}
