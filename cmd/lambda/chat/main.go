package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"

	"luna-chat-api/internal/handlers"
	"luna-chat-api/pkg/lambda"
)

func handleChat(ctx context.Context, req *lambda.Request) *lambda.Response {
	manager := lambda.GetContainerManager()
	coldStart := !manager.IsHealthy()

	container, err := manager.GetContainer(ctx)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"request_id": req.RequestID,
			"cold_start": coldStart,
			"error":      err.Error(),
		}).Error("Chat function failed to initialize")
		return handlers.UnavailableResponse()
	}

	if coldStart {
		logrus.WithFields(logrus.Fields{
			"request_id": req.RequestID,
			"responder":  container.ResponderName(),
		}).Info("Chat function cold start")
	}

	chatHandler := handlers.NewChatHandler(container.ChatService, container.Config.Chat.AllowOrigin)
	return chatHandler.Handle(ctx, req)
}

func handler(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	resp := lambda.WithLogging("chat", handleChat)(ctx, lambda.FromAPIGateway(event))
	return lambda.ToAPIGateway(resp), nil
}

func main() {
	awslambda.Start(handler)
}
