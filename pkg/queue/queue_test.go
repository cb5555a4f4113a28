package queue_test

import (
	"context"
	"testing"
	"time"

	watermill "github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/yeisme/cloudvault/pkg/queue"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	payload := queue.FileUploadedPayload{
		File: queue.FileRef{
			ID:          "f1",
			Name:        "photo.png",
			Type:        "image",
			Size:        42,
			ObjectKey:   "alice/01abc.png",
			ContentType: "image/png",
		},
		OwnerID: "alice",
	}

	env := queue.Message[queue.FileUploadedPayload]{
		Header:  queue.NewEventHeader(queue.TopicFileUploaded, queue.WithProducer("cloudvault"), queue.WithTraceID("t-1")),
		Payload: payload,
	}

	data, err := queue.Encode(env)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	decoded, err := queue.Decode[queue.FileUploadedPayload](data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if decoded.Header.Topic != queue.TopicFileUploaded || decoded.Header.Producer != "cloudvault" {
		t.Fatalf("header = %+v", decoded.Header)
	}

	if decoded.Header.Version != queue.PayloadVersionV1 {
		t.Fatalf("version = %q", decoded.Header.Version)
	}

	if decoded.Payload != payload {
		t.Fatalf("payload = %+v, want %+v", decoded.Payload, payload)
	}
}

func TestWatermillMessageMetadata(t *testing.T) {
	msg, err := queue.NewWatermillMessage(
		queue.TopicActivityRecorded,
		queue.ActivityRecordedPayload{ActivityID: "a1", UserID: "alice", Action: "upload", FileID: "f1"},
		queue.WithProducer("cloudvault"),
		queue.WithTraceID("t-2"),
	)
	if err != nil {
		t.Fatalf("new message: %v", err)
	}

	if msg.Metadata.Get("topic") != queue.TopicActivityRecorded {
		t.Fatalf("topic metadata = %q", msg.Metadata.Get("topic"))
	}

	if msg.Metadata.Get("trace_id") != "t-2" || msg.Metadata.Get("producer") != "cloudvault" {
		t.Fatalf("metadata = %+v", msg.Metadata)
	}

	if _, err := time.Parse(time.RFC3339Nano, msg.Metadata.Get("occurred_at")); err != nil {
		t.Fatalf("occurred_at not RFC3339: %v", err)
	}

	env, err := queue.ParseActivityRecorded(msg)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if env.Payload.ActivityID != "a1" || env.Payload.Action != "upload" {
		t.Fatalf("payload = %+v", env.Payload)
	}
}

func TestPublishFileUploaded(t *testing.T) {
	pubsub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubsub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ch, err := pubsub.Subscribe(ctx, queue.TopicFileUploaded)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	payload := queue.FileUploadedPayload{
		File:    queue.FileRef{ID: "f1", Name: "photo.png"},
		OwnerID: "alice",
	}

	if err := queue.PublishFileUploaded(pubsub, payload, queue.WithProducer("cloudvault")); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case msg := <-ch:
		env, err := queue.ParseFileUploaded(msg)
		if err != nil {
			t.Fatalf("parse: %v", err)
		}

		if env.Payload.File.ID != "f1" || env.Payload.OwnerID != "alice" {
			t.Fatalf("payload = %+v", env.Payload)
		}

		msg.Ack()
	case <-ctx.Done():
		t.Fatal("no message received")
	}
}
