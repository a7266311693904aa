package main

import (
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func TestRootCommand(t *testing.T) {
	convey.Convey("Given the root command", t, func() {
		cmd := newRootCmd()

		convey.Convey("Then it exposes the run flags with defaults", func() {
			flags := cmd.Flags()
			url, err := flags.GetString("url")
			convey.So(err, convey.ShouldBeNil)
			convey.So(url, convey.ShouldEqual, "http://localhost:5000")

			n, err := flags.GetInt("products")
			convey.So(err, convey.ShouldBeNil)
			convey.So(n, convey.ShouldEqual, defaultNumProducts)

			convey.So(flags.Lookup("fixtures"), convey.ShouldNotBeNil)
		})

		convey.Convey("And positional arguments are rejected", func() {
			cmd.SetArgs([]string{"extra"})
			convey.So(cmd.Execute(), convey.ShouldNotBeNil)
		})

		convey.Convey("And an unknown log format fails before any request", func() {
			cmd.SetArgs([]string{"--log-format", "xml", "--url", "http://127.0.0.1:0"})
			convey.So(cmd.Execute(), convey.ShouldNotBeNil)
		})
	})
}
