package toolwarn_test

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/staticbugs/toolwarn"
)

var _ = Describe("Configuration", func() {
	var configuration *toolwarn.Config
	BeforeEach(func() {
		configuration = toolwarn.NewConfig()
	})

	Context("when using defaults", func() {
		It("should log and write outputs relative to the working directory", func() {
			Expect(configuration.LogDir).Should(Equal("logs"))
			Expect(configuration.OutputDir).Should(Equal("outputs"))
			Expect(configuration.LogLevel).Should(Equal("debug"))
		})
	})

	Context("when loading from disk", func() {
		It("should be possible to load configuration from a reader", func() {
			data := "log_dir: /tmp/tw-logs\noutput_dir: /tmp/tw-out\n"
			nread, err := configuration.ReadFrom(bytes.NewBufferString(data))
			Expect(nread).Should(Equal(int64(len(data))))
			Expect(err).ShouldNot(HaveOccurred())
			Expect(configuration.LogDir).Should(Equal("/tmp/tw-logs"))
			Expect(configuration.OutputDir).Should(Equal("/tmp/tw-out"))
			Expect(configuration.LogLevel).Should(Equal("debug"))
		})

		It("should return an error if configuration is invalid", func() {
			_, err := configuration.ReadFrom(bytes.NewBuffer([]byte{0xc0, 0xff, 0xee}))
			Expect(err).Should(HaveOccurred())
		})

		It("should load a configuration file and expand the home directory", func() {
			dir, err := os.MkdirTemp("", "toolwarn-config")
			Expect(err).ShouldNot(HaveOccurred())
			defer os.RemoveAll(dir)

			path := filepath.Join(dir, "toolwarn.yaml")
			Expect(os.WriteFile(path, []byte("log_dir: ~/tw-logs\nlog_level: warn\n"), 0o600)).Should(Succeed())

			cfg, err := toolwarn.LoadConfig(path)
			Expect(err).ShouldNot(HaveOccurred())
			home, err := homedir.Dir()
			Expect(err).ShouldNot(HaveOccurred())
			Expect(cfg.LogDir).Should(Equal(filepath.Join(home, "tw-logs")))
			Expect(cfg.OutputDir).Should(Equal("outputs"))
			Expect(cfg.LogLevel).Should(Equal("warn"))
		})

		It("should let the environment override the file", func() {
			GinkgoT().Setenv("TOOLWARN_OUTPUT_DIR", "/tmp/tw-env")
			cfg, err := toolwarn.LoadConfig("")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(cfg.OutputDir).Should(Equal("/tmp/tw-env"))
		})

		It("should fail on a missing configuration file", func() {
			_, err := toolwarn.LoadConfig("/nonexistent/toolwarn.yaml")
			Expect(err).Should(HaveOccurred())
		})
	})

	Context("when saving to disk", func() {
		It("should be possible to save the configuration as YAML", func() {
			expected := "log_dir: logs\noutput_dir: outputs\nlog_level: debug\n"
			buffer := bytes.NewBuffer([]byte{})
			nbytes, err := configuration.WriteTo(buffer)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(int(nbytes)).Should(Equal(len(expected)))
			Expect(buffer.String()).Should(Equal(expected))
		})
	})
})
