package tasks

import (
	"context"
	"fmt"

	cloudtasks "cloud.google.com/go/cloudtasks/apiv2"
	taskspb "cloud.google.com/go/cloudtasks/apiv2/cloudtaskspb"
	"github.com/googleapis/gax-go/v2"
	"github.com/rs/zerolog/log"
	"github.com/ubergonmx/hyv-auto-daily/config"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

// CloudTasksClient is the subset of *cloudtasks.Client used for run dispatch
// and queue bootstrap.
type CloudTasksClient interface {
	CreateTask(ctx context.Context, req *taskspb.CreateTaskRequest, opts ...gax.CallOption) (*taskspb.Task, error)
	CreateQueue(ctx context.Context, req *taskspb.CreateQueueRequest, opts ...gax.CallOption) (*taskspb.Queue, error)
	Close() error
}

// NewCloudTasksClient dials the emulator over plaintext gRPC when running
// locally, and the real service otherwise.
func NewCloudTasksClient(ctx context.Context, cfg *config.Config) (CloudTasksClient, error) {
	if (cfg.UseEmulator || cfg.IsLocal()) && cfg.CloudTasksAddress != "" {
		log.Info().Str("address", cfg.CloudTasksAddress).Msg("Using local Cloud Tasks emulator")
		conn, err := grpc.NewClient(
			cfg.CloudTasksAddress,
			grpc.WithTransportCredentials(insecure.NewCredentials()),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to dial emulator: %w", err)
		}
		return cloudtasks.NewClient(ctx, option.WithGRPCConn(conn))
	}

	return cloudtasks.NewClient(ctx)
}

// QueuePath returns the fully qualified Cloud Tasks queue name.
func QueuePath(cfg *config.Config) string {
	return fmt.Sprintf("%s/queues/%s", locationPath(cfg), cfg.QueueID)
}

func locationPath(cfg *config.Config) string {
	return fmt.Sprintf("projects/%s/locations/%s", cfg.ProjectID, cfg.LocationID)
}

// EnsureQueue creates the run queue with a single attempt per task. An
// existing queue is left untouched. It reports whether the queue was created.
func EnsureQueue(ctx context.Context, client CloudTasksClient, cfg *config.Config) (bool, error) {
	_, err := client.CreateQueue(ctx, &taskspb.CreateQueueRequest{
		Parent: locationPath(cfg),
		Queue: &taskspb.Queue{
			Name:        QueuePath(cfg),
			RetryConfig: &taskspb.RetryConfig{MaxAttempts: 1},
		},
	})
	switch status.Code(err) {
	case codes.OK:
		return true, nil
	case codes.AlreadyExists:
		return false, nil
	default:
		return false, fmt.Errorf("failed to create queue %s: %w", QueuePath(cfg), err)
	}
}
