// Package main runs the whole inspection API as one local HTTP server,
// pointed at LocalStack or real AWS via the usual environment.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/propertypulse/inspection-platform/internal/awsutil"
	"github.com/propertypulse/inspection-platform/internal/config"
	"github.com/propertypulse/inspection-platform/internal/ddb"
	"github.com/propertypulse/inspection-platform/internal/httpserver"
	"github.com/propertypulse/inspection-platform/internal/imagegrant"
	"github.com/propertypulse/inspection-platform/internal/inspection"
	"github.com/propertypulse/inspection-platform/internal/notify"
	"github.com/propertypulse/inspection-platform/internal/report"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

func main() {
	env := config.MustLoad()
	cfg, endpoint, err := awsutil.Load(context.Background(), env.Region)
	if err != nil {
		log.Fatalf("aws config: %v", err)
	}

	repo := &ddb.Repo{DB: dynamodb.NewFromConfig(cfg), Table: env.Table}

	s3c := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.UsePathStyle = true
		}
	})
	grants := &imagegrant.Service{
		Presign:     s3.NewPresignClient(s3c),
		Bucket:      env.Bucket,
		UploadTTL:   env.UploadTTL,
		DownloadTTL: env.DownloadTTL,
	}

	var publisher report.Publisher
	if env.TopicARN != "" {
		publisher = &notify.SNSPublisher{SNS: sns.NewFromConfig(cfg), TopicARN: env.TopicARN}
	}

	handler := httpserver.NewRouter(inspection.New(repo), report.New(repo, publisher), grants, env.CallTimeout)

	addr := fmt.Sprintf(":%d", env.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Printf("listening on %s (table=%s bucket=%s)", addr, env.Table, env.Bucket)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
