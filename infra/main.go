package main

import (
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/GregMSThompson/insights-dashboard/infra/cloudrun"
	"github.com/GregMSThompson/insights-dashboard/infra/docker"
	"github.com/GregMSThompson/insights-dashboard/infra/firestore"
	"github.com/GregMSThompson/insights-dashboard/infra/identity"
	"github.com/GregMSThompson/insights-dashboard/infra/provider"
	"github.com/GregMSThompson/insights-dashboard/infra/vertex"
)

func main() {
	pulumi.Run(func(ctx *pulumi.Context) error {
		// set default provider with the correct project
		prov, err := provider.SetupDefaultProvider(ctx)
		if err != nil {
			return err
		}

		// identity platform backs the firebase tokens the dashboard routes verify
		ident, err := identity.SetupIdentity(ctx, prov)
		if err != nil {
			return err
		}

		// widgets, metrics and insights live in firestore
		db, err := firestore.SetupFirestore(ctx, prov)
		if err != nil {
			return err
		}

		// predictions
		ai, err := vertex.SetupVertex(ctx, prov)
		if err != nil {
			return err
		}

		repo, err := docker.CreateCloudrunRepo(ctx, prov)
		if err != nil {
			return err
		}

		_, err = cloudrun.SetupCloudRun(ctx, prov, ident, db, ai, repo)
		return err
	})
}
