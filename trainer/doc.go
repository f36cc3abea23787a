/*
Package trainer implements Trainer contract, the entry point of CoTrain
deployments.

Trainer contract is the only contract of the trio that users invoke and the
only one that holds GAS. On submission it asks the Incentive contract for
the current price, pulls exactly that amount from the submitter, stores an
escrow record in the Ledger contract under the commitment hash of the
submission attributes and feeds the sample to the classifier contract. On
refund and report it looks up the record, obtains a prediction, lets the
Ledger contract apply the claim and the Incentive contract adjudicate it,
and only then moves GAS out of its own account. A rejected claim faults
the transaction, so escrow mutations and payouts are all or nothing.

# Contract notifications

SampleSubmitted notification. This notification is produced when a sample
is recorded and its deposit escrowed. It carries the raw sample so the
dataset can be reconstructed off chain; the remaining record fields travel
in the Ledger contract's ContributionAdded notification of the same
transaction.

	SampleSubmitted:
	  - name: key
	    type: ByteArray
	  - name: sample
	    type: ByteArray

ReportRewarded notification. This notification is produced when a report
claim is accepted and the reward paid out.

	ReportRewarded:
	  - name: key
	    type: ByteArray
	  - name: reporter
	    type: Hash160
	  - name: amount
	    type: Integer
*/
package trainer
