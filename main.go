package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/facebookgo/inject"
	"github.com/gin-gonic/gin"
	"github.com/op/go-logging"
	"github.com/spf13/cobra"
	"github.com/tryanzu/quorum/board/comments"
	"github.com/tryanzu/quorum/board/search"
	"github.com/tryanzu/quorum/board/store"
	"github.com/tryanzu/quorum/board/viewer"
	"github.com/tryanzu/quorum/core/common"
	"github.com/tryanzu/quorum/core/exceptions"
	"github.com/tryanzu/quorum/deps"
	"github.com/tryanzu/quorum/handle"
	"github.com/tryanzu/quorum/internal/dal"
)

var log = logging.MustGetLogger("quorum")

func main() {
	container, err := deps.Bootstrap()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Graph main object (used to inject dependencies)
	var (
		g      inject.Graph
		api    handle.API
		errors exceptions.ExceptionsModule
	)
	err = g.Provide(
		&inject.Object{Value: &container, Complete: true},
		&inject.Object{Value: container.Errors(), Complete: true},
		&inject.Object{Value: &errors},
		&inject.Object{Value: &api},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := g.Populate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	api.Secret = container.Config().Copy().Security.Secret

	cmdAPI := &cobra.Command{
		Use:   "api [bind]",
		Short: "Starts API web server",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			bind := container.Config().Copy().HTTP.Bind
			if len(args) == 1 {
				bind = args[0]
			}
			if container.Config().Copy().Environment == "production" {
				gin.SetMode(gin.ReleaseMode)
			}
			router := gin.New()
			router.Use(gin.Logger())
			api.Routes(router)
			log.Infof("listening on %s", bind)
			if err := router.Run(bind); err != nil {
				log.Fatal(err)
			}
		},
	}

	cmdIndexes := &cobra.Command{
		Use:   "ensure-indexes",
		Short: "Creates text and unique indexes",
		Run: func(cmd *cobra.Command, args []string) {
			if err := store.NewMongo(container.Mgo()).EnsureIndexes(); err != nil {
				log.Fatal(err)
			}
			log.Info("indexes ensured")
		},
	}

	cmdSearch := &cobra.Command{
		Use:   "search <text>",
		Short: "Runs a search as an anonymous viewer",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			defer errors.Recover(map[string]string{"command": "search"})
			kind, _ := cmd.Flags().GetString("type")
			list, err := search.Search(context.Background(), container, search.Query{Text: args[0], Type: kind}, viewer.Anonymous)
			dump(list, err)
		},
	}
	cmdSearch.Flags().String("type", "", "question, answer, post or profile")

	cmdThread := &cobra.Command{
		Use:   "thread <post id>",
		Short: "Prints a page of the comment thread of a post",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			defer errors.Recover(map[string]string{"command": "thread"})
			id, ok := common.ValidID(args[0])
			if !ok {
				log.Fatalf("invalid post id %s", args[0])
			}
			page, _ := cmd.Flags().GetInt("page")
			list, err := comments.FetchThread(context.Background(), container, id, viewer.Anonymous, page, 0)
			dump(list, err)
		},
	}
	cmdThread.Flags().Int("page", 1, "thread page")

	cmdSeed := &cobra.Command{
		Use:   "seed",
		Short: "Seeds an empty board with sample content",
		Run: func(cmd *cobra.Command, args []string) {
			seeded, err := dal.Seed(context.Background(), container)
			dump(seeded, err)
		},
	}

	rootCmd := &cobra.Command{Use: "quorum"}
	rootCmd.AddCommand(cmdAPI, cmdIndexes, cmdSearch, cmdThread, cmdSeed)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func dump(v interface{}, err error) {
	if err != nil {
		log.Fatalf("%s: %v", exceptions.KindOf(err), err)
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(out))
}
