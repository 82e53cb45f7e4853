package main

import (
	"net/netip"

	"github.com/spf13/cobra"

	"github.com/lanrat/shuffle"
)

func newSubnetsCmd(opts *options) *cobra.Command {
	var size int

	cmd := &cobra.Command{
		Use:     "subnets CIDR",
		Short:   "Print the subnets of CIDR in random order",
		Example: "  shuffle subnets 2001:db8::/48 --size 64 -n 10",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix, err := netip.ParsePrefix(args[0])
			if err != nil {
				return err
			}
			if size == 0 {
				// if unset, use single hosts: /32 for IPv4 or /128 for IPv6
				size = prefix.Addr().BitLen()
			}

			iter, err := shuffle.NewSubnetIterator(opts.src, prefix, size)
			if err != nil {
				return err
			}
			l.Infof("permuting %d /%d subnets of %s", iter.Size(), size, prefix.Masked())

			return emit(cmd.Context(), cmd.OutOrStdout(), opts.cfg.Count, func() (string, bool) {
				p, ok := iter.Next()
				if !ok && opts.repeat {
					// all the subnets have been used, start over with a new order
					v("used all the subnets in our pool, looping back around...")
					iter, err = shuffle.NewSubnetIterator(opts.src, prefix, size)
					if err != nil {
						return "", false
					}
					p, ok = iter.Next()
				}
				if !ok {
					return "", false
				}
				return p.String(), true
			})
		},
	}
	cmd.Flags().IntVar(&size, "size", 0, "CIDR prefix length of the subnets (e.g., 64 for /64 IPv6 subnets)")
	return cmd
}
