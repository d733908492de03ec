package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"runtime"

	"github.com/filedrop/filedrop/internal/client"
	"github.com/filedrop/filedrop/internal/config"
	"github.com/filedrop/filedrop/internal/database"
	"github.com/filedrop/filedrop/internal/logfile"
	"github.com/filedrop/filedrop/internal/scheduler"
	"github.com/filedrop/filedrop/internal/storage"
	"github.com/filedrop/filedrop/internal/webserver"
	"github.com/mdouchement/logger"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	version  = "dev"
	revision = "none"
	date     = "unknown"

	binding     string
	port        string
	recordsPath string
	sourceDir   string
	quiet       bool
)

func main() {
	c := &cobra.Command{
		Use:     "filedrop",
		Short:   "File hosting server and upload client",
		Version: fmt.Sprintf("%s - build %.7s @ %s - %s", version, revision, date, runtime.Version()),
		Args:    cobra.ExactArgs(0),
	}
	c.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Version for filedrop",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(c.Version)
		},
	})
	c.AddCommand(initCmd)
	c.AddCommand(reindexCmd)

	serverCmd.Flags().StringVarP(&binding, "binding", "b", "0.0.0.0", "Server's binding")
	serverCmd.Flags().StringVarP(&port, "port", "p", "", "Server's port (defaults to PORT)")
	c.AddCommand(serverCmd)

	uploadCmd.Flags().StringVarP(&recordsPath, "records", "r", "", "Records file path (defaults to RECORDS_PATH)")
	uploadCmd.Flags().StringVarP(&sourceDir, "directory", "d", "", "Upload every file of the given directory")
	uploadCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not display progress")
	c.AddCommand(uploadCmd)

	recordsCmd.Flags().StringVarP(&recordsPath, "records", "r", "", "Records file path (defaults to RECORDS_PATH)")
	c.AddCommand(recordsCmd)

	if err := c.Execute(); err != nil {
		log.Fatalf("%+v", err)
	}
}

var (
	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Init the database",
		Args:  cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			return database.StormInit(config.Load().DatabasePath)
		},
	}

	//

	reindexCmd = &cobra.Command{
		Use:   "reindex",
		Short: "Reindex the database",
		Args:  cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			return database.StormReIndex(config.Load().DatabasePath)
		},
	}

	//

	serverCmd = &cobra.Command{
		Use:   "server",
		Short: "Start server",
		Args:  cobra.ExactArgs(0),
		RunE: func(c *cobra.Command, _ []string) error {
			cfg := config.Load()
			if port != "" {
				cfg.Port = port
			}
			if err := cfg.ValidateServer(); err != nil {
				return err
			}

			ctrl := webserver.Controller{
				Version: c.Parent().Version,
				//
				AccessKey:     cfg.AccessKey,
				StoragePath:   cfg.UploadDir,
				MaxUploadSize: cfg.MaxUploadSize,
			}
			ctrl.Logger = newLogger(cfg.LogPath)

			//

			db, err := database.StormOpen(cfg.DatabasePath)
			if err != nil {
				return errors.Wrap(err, "could not open database")
			}
			defer db.Close()
			ctrl.Database = db

			//

			ctrl.Storage = storage.NewFileSystem(cfg.UploadDir)

			//

			scheduler.Start(scheduler.Controller{
				Logger:        ctrl.Logger,
				Storage:       ctrl.Storage,
				Specification: "@every 30m",
			})

			//

			engine := webserver.EchoEngine(ctrl)
			webserver.PrintRoutes(engine)

			ctrl.Logger.Infof("Starting server on port %s", cfg.Port)
			return errors.Wrap(
				engine.Start(fmt.Sprintf("%s:%s", binding, cfg.Port)),
				"could not run server",
			)
		},
	}

	//

	uploadCmd = &cobra.Command{
		Use:   "upload [files...]",
		Short: "Upload files and print their shareable URLs",
		Args:  cobra.ArbitraryArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			cfg := config.Load()
			if err := cfg.ValidateClient(); err != nil {
				return err
			}
			if recordsPath == "" {
				recordsPath = cfg.RecordsPath
			}

			files := args
			if sourceDir != "" {
				batch, err := listDir(sourceDir)
				if err != nil {
					return err
				}
				files = append(files, batch...)
			}
			if len(files) == 0 {
				return errors.New("nothing to upload")
			}

			uploader := client.Uploader{
				Logger:    newLogger(""),
				BaseURL:   cfg.BaseURL,
				AccessKey: cfg.AccessKey,
			}
			if !quiet {
				uploader.Progress = newProgressRenderer()
			}

			urls, err := uploader.Upload(files, recordsPath)
			if err != nil {
				return err
			}

			for _, url := range urls {
				fmt.Println(url)
			}
			return nil
		},
	}

	//

	recordsCmd = &cobra.Command{
		Use:   "records",
		Short: "List the recorded uploads",
		Args:  cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			if recordsPath == "" {
				recordsPath = config.Load().RecordsPath
			}

			entries, err := client.ReadRecords(recordsPath)
			if err != nil {
				return err
			}

			for _, entry := range entries {
				fmt.Printf("%s  %s  %s\n", entry.Time, entry.OriginalFileName, entry.URLLocation)
			}
			return nil
		},
	}
)

// newLogger builds the formatted logger, with the line-oriented file
// hook when logpath is set.
func newLogger(logpath string) logger.Logger {
	log := logrus.New()
	log.SetFormatter(&logger.LogrusTextFormatter{
		DisableColors:   false,
		ForceColors:     true,
		ForceFormatting: true,
		PrefixRE:        regexp.MustCompile(`^(\[.*?\])\s`),
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	if logpath != "" {
		log.AddHook(logfile.New(logpath))
	}
	return logger.WrapLogrus(log)
}

// newProgressRenderer displays one progress bar per transferred file.
func newProgressRenderer() client.ProgressFunc {
	var bar *progressbar.ProgressBar
	var current string

	return func(name string, written, total int64) {
		if name != current {
			current = name
			bar = progressbar.DefaultBytes(total, name)
		}
		bar.Set64(written)
	}
}

func listDir(dirname string) ([]string, error) {
	entries, err := os.ReadDir(dirname)
	if err != nil {
		return nil, errors.Wrap(err, "could not read upload directory")
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		files = append(files, filepath.Join(dirname, entry.Name()))
	}
	return files, nil
}
