package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"

	"luna-chat-api/internal/handlers"
	"luna-chat-api/pkg/lambda"
)

func handler(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	resp := lambda.WithLogging("hello", handlers.Hello)(ctx, lambda.FromAPIGateway(event))
	return lambda.ToAPIGateway(resp), nil
}

func main() {
	awslambda.Start(handler)
}
