package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"

	"luna-chat-api/internal/handlers"
	"luna-chat-api/pkg/lambda"
)

// handleEvent answers with the configured origin. A configuration failure
// does not stop the diagnostic echo; it falls back to "*".
func handleEvent(ctx context.Context, req *lambda.Request) *lambda.Response {
	allowOrigin := "*"

	container, err := lambda.GetContainerManager().GetContainer(ctx)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"request_id": req.RequestID,
			"error":      err.Error(),
		}).Warn("Event function failed to load configuration")
	} else {
		allowOrigin = container.Config.Chat.AllowOrigin
	}

	return handlers.NewEventHandler(allowOrigin).Handle(ctx, req)
}

func handler(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	resp := lambda.WithLogging("test-event", handleEvent)(ctx, lambda.FromAPIGateway(event))
	return lambda.ToAPIGateway(resp), nil
}

func main() {
	awslambda.Start(handler)
}
