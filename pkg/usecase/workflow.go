package usecase

import (
	"context"

	"github.com/finops-lab/compliancebot/pkg/domain/model/slack"
	"github.com/finops-lab/compliancebot/pkg/domain/types"
	"github.com/finops-lab/compliancebot/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	libslack "github.com/slack-go/slack"
)

// step is one unit of a workflow: a status message, an action, or both.
// The executor posts the message first, then runs the action. A step with
// neither acts as a pure think-time pause.
type step struct {
	message string
	action  func(ctx context.Context) error
}

// HandleMessage classifies an inbound message and runs the matching
// workflow to completion. It is the single entry point for callback
// events; the HTTP boundary dispatches it asynchronously and must not
// wait for it.
func (uc *UseCases) HandleMessage(ctx context.Context, msg *slack.Message) error {
	if msg == nil {
		return goerr.New("message is nil")
	}
	if msg.FromBot() {
		return nil
	}

	intent := types.ClassifyIntent(msg.Text(), msg.HasFiles())

	logger := logging.From(ctx)
	logger.Info("classified inbound message",
		"intent", intent.String(),
		"channel_id", msg.ChannelID(),
		"thread_id", msg.ThreadID().String(),
	)

	steps := uc.buildWorkflow(intent, msg)
	if len(steps) == 0 {
		// Unrecognized command: deliberate no-op
		return nil
	}

	return uc.runWorkflow(ctx, msg, intent, steps)
}

// runWorkflow executes the step sequence in order, pausing a bounded
// random think-time between steps. Steps are strictly ordered; each waits
// for the previous outbound call to complete. Any step error terminates
// the workflow with exactly one explanatory message in-thread.
func (uc *UseCases) runWorkflow(ctx context.Context, msg *slack.Message, intent types.Intent, steps []step) error {
	for i, st := range steps {
		if i > 0 {
			uc.sleeper(ctx, uc.thinkTime())
		}
		if ctx.Err() != nil {
			return goerr.Wrap(ctx.Err(), "workflow interrupted", goerr.V(IntentKey, intent.String()))
		}

		if st.message != "" {
			if err := uc.post(ctx, msg, st.message); err != nil {
				// The outbound channel itself is broken; nothing
				// further can reach the user
				return goerr.Wrap(err, "failed to post workflow step", goerr.V(IntentKey, intent.String()))
			}
		}

		if st.action == nil {
			continue
		}

		if err := st.action(ctx); err != nil {
			text, known := userMessage(err)
			if postErr := uc.post(ctx, msg, text); postErr != nil {
				return goerr.Wrap(postErr, "failed to post workflow failure message", goerr.V(IntentKey, intent.String()))
			}
			if known {
				// Explained to the user; done
				return nil
			}
			return goerr.Wrap(err, "workflow step failed", goerr.V(IntentKey, intent.String()))
		}
	}

	return nil
}

// post sends one text message into the originating thread
func (uc *UseCases) post(ctx context.Context, msg *slack.Message, text string) error {
	callCtx, cancel := uc.callCtx(ctx)
	defer cancel()

	if _, err := uc.slack.PostMessage(callCtx, msg.ChannelID(), text, msg.ReplyTS()); err != nil {
		return goerr.Wrap(err, "failed to post message", goerr.V("channel_id", msg.ChannelID()))
	}
	return nil
}

// postBlocks sends one Block Kit message into the originating thread
func (uc *UseCases) postBlocks(ctx context.Context, msg *slack.Message, blocks []libslack.Block, fallback string) error {
	callCtx, cancel := uc.callCtx(ctx)
	defer cancel()

	if _, err := uc.slack.PostBlocks(callCtx, msg.ChannelID(), blocks, fallback, msg.ReplyTS()); err != nil {
		return goerr.Wrap(err, "failed to post blocks", goerr.V("channel_id", msg.ChannelID()))
	}
	return nil
}
