package formatter

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/younsl/ec2-manager/internal/models"
)

const separator = "~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~"

// PrintInstances writes one block per instance, in the order given.
func PrintInstances(w io.Writer, instances []models.InstanceInfo, verbosity models.Verbosity) {
	for _, instance := range instances {
		PrintInstance(w, instance, verbosity)
	}
}

// PrintInstance writes a single instance block. Quiet prints only the
// instance ID; verbose adds the full set of descriptor fields. Optional
// fields render as blank values so the labels always line up.
func PrintInstance(w io.Writer, instance models.InstanceInfo, verbosity models.Verbosity) {
	fmt.Fprintln(w, instance.InstanceID)
	if verbosity == models.VerbosityQuiet {
		return
	}

	verbose := verbosity == models.VerbosityVerbose

	fmt.Fprintln(w, separator)
	if verbose {
		printField(w, "AMI:", instance.ImageID)
	}
	printField(w, "Type:", instance.InstanceType)
	if verbose {
		printField(w, "Launched:", formatTime(instance.LaunchTime))
		printField(w, "AZ:", instance.AvailabilityZone)
		printField(w, "Private DNS:", instance.PrivateDNS)
		printField(w, "Public DNS:", instance.PublicDNS)
	}
	printField(w, "Private IP:", instance.PrivateIP)
	printField(w, "Public IP:", instance.PublicIP)
	if verbose {
		printField(w, "Subnet Id:", instance.SubnetID)
		printField(w, "VPC Id:", instance.VpcID)
	}
	printField(w, "State:", instance.State)
	if verbose {
		if instance.StoppedTime != nil {
			printField(w, "Stopped:", formatTime(instance.StoppedTime))
		}
		printField(w, "Tags:", formatTags(instance.Tags))
	}
	fmt.Fprintln(w)
}

// printField aligns values in a fixed 13-column label field.
func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %-13s%s\n", label, value)
}

// formatTime renders an absolute timestamp with a humanized age suffix.
func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return fmt.Sprintf("%s (%s)", t.Format("2006-01-02 15:04:05 MST"), humanize.Time(*t))
}

// formatTags renders tags as sorted key=value pairs.
func formatTags(tags map[string]string) string {
	if len(tags) == 0 {
		return ""
	}

	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%s", k, tags[k]))
	}
	return strings.Join(pairs, ", ")
}
