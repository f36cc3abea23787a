/*
Package incentive implements Incentive contract which is deployed alongside
the Trainer contract in CoTrain deployments.

Incentive contract is the policy half of the contribution escrow. It prices
each submission with a fee curve that decays with idle time, keeps the
per-address counters of validated contributions and adjudicates refund and
report claims against escrow records held by the Ledger contract. The
contract never holds or moves assets itself: the Trainer contract quotes,
charges and pays, passing contribution state in as plain arguments, and a
rejected claim is surfaced as a panic that faults the whole transaction.

# Contract notifications

Incentive contract does not produce notifications on invocation.
*/
package incentive
