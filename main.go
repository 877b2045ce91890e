package main

import (
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/shopstreet/shopstreet/app/cmd"
	"github.com/shopstreet/shopstreet/app/configs"
	"github.com/shopstreet/shopstreet/app/routes"
	"github.com/shopstreet/shopstreet/app/services"
	"github.com/shopstreet/shopstreet/app/utils/sessions"
)

func main() {
	env := configs.LoadEnv()

	if len(os.Args) > 1 {
		cmd.RunCli(env)
		return
	}

	db, err := configs.OpenConnection(env)
	if err != nil {
		logrus.WithError(err).Fatal("database connection failed")
	}
	logrus.Info("database connected")

	keys, err := configs.DecodeSessionKeys(env)
	if err != nil {
		logrus.WithError(err).Fatal("session keys invalid")
	}
	if env.CSRFKey == "" {
		logrus.Fatal("APP_CSRF_KEY environment variable not set")
	}

	sess := sessions.NewCookieSessionStore(env.IsProduction(), keys.AuthKey, keys.EncKey)
	gateway := services.NewMidtransGateway(env.MidtransServerKey, env.IsProduction())

	router := routes.NewRouter(db, env, sess, gateway, []byte(env.CSRFKey))

	server := &http.Server{
		Addr:         env.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logrus.WithField("addr", env.Port).Info("server listening")
	if err := server.ListenAndServe(); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
