package pipeline

import (
	"github.com/scorandini/fcr-cli/internal/channelmap"
	"github.com/scorandini/fcr-cli/internal/model"
)

// ApplyChannel resolves the record's canonical channel from the mapping
// table. Unmapped channel-subtype keys are tolerated: the canonical
// channel stays empty and classification proceeds.
func ApplyChannel(cr *model.ClassifiedRecord, channels *channelmap.Table) {
	key := channelmap.Key(cr.ChannelSlug, cr.Subtype)
	if canonical, ok := channels.Lookup(key); ok {
		cr.CanonicalChannel = canonical
	}
}

// ApplyEligibility flags FCR-eligible records and builds the grouping key
// used by the sequence counter.
//
// Ineligible records all share the empty grouping key. That shared empty
// bucket is deliberate: it is never sequenced, so ineligible records
// never count against any threshold. An absent canonical channel
// contributes an empty segment but still yields a valid grouping key.
func ApplyEligibility(cr *model.ClassifiedRecord) {
	cr.FCREligible = isFCRSubtype(cr.Subtype) && cr.BuyerInteraction

	if !cr.FCREligible {
		cr.GroupingKey = ""
		return
	}
	cr.GroupingKey = cr.TopicKey + cr.ChannelOrderCode + cr.BrandedStoreSlug + cr.Reason + cr.CanonicalChannel
}

func isFCRSubtype(subtype string) bool {
	for _, s := range model.FCRSubtypes {
		if subtype == s {
			return true
		}
	}
	return false
}
